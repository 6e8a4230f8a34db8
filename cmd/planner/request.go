package main

import (
	"dropoff-route-planner/internal/domain"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// requestFile is the YAML form of a planning request:
//
//	origin:
//	  name: Home
//	  address: 1-1 Chiyoda, Tokyo
//	departure: "08:00"
//	destinations:
//	  - name: Aki
//	    address: 2-3 Kanda, Tokyo
//	    requested_by: "08:30"
type requestFile struct {
	Origin struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
	} `yaml:"origin"`
	Departure        string `yaml:"departure"`
	DestinationCount *int   `yaml:"destination_count"`
	Destinations     []struct {
		Name        string `yaml:"name"`
		Address     string `yaml:"address"`
		RequestedBy string `yaml:"requested_by"`
	} `yaml:"destinations"`
}

func readRequest(r io.Reader) (domain.PlanningInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f requestFile
	if err := dec.Decode(&f); err != nil {
		return domain.PlanningInput{}, fmt.Errorf("read request: %w", err)
	}

	in := domain.PlanningInput{
		OriginName:       f.Origin.Name,
		OriginAddress:    f.Origin.Address,
		DepartureTime:    f.Departure,
		DestinationCount: f.DestinationCount,
		Destinations:     make([]domain.DestinationInput, 0, len(f.Destinations)),
	}
	for _, d := range f.Destinations {
		in.Destinations = append(in.Destinations, domain.DestinationInput{
			Name:        d.Name,
			Address:     d.Address,
			RequestedBy: d.RequestedBy,
		})
	}
	return in, nil
}
