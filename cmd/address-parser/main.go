// address-parser splits a free-form address query into libpostal
// components and optionally runs a postal-code search with them. It lives
// in its own command because gopostal needs cgo and an installed
// libpostal; the API server stays free of that dependency.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	postal "github.com/openvenues/gopostal/parser"

	"github.com/kodpocztowy/internal/config"
	"github.com/kodpocztowy/internal/db"
	"github.com/kodpocztowy/internal/normalize"
	"github.com/kodpocztowy/internal/store"
)

func main() {
	var (
		address = flag.String("address", "", "Free-form address to parse, e.g. \"ul. Złota 44, Warszawa\"")
		search  = flag.Bool("search", false, "Run a postal-code search with the parsed components")
		limit   = flag.Int("limit", 10, "Maximum number of search results")
	)
	flag.Parse()

	if *address == "" {
		flag.Usage()
		return
	}

	components := postal.ParseAddress(*address)

	fmt.Printf("Input: %s\n\nParsed components:\n", *address)
	for _, component := range components {
		fmt.Printf("  %s: %s\n", component.Label, component.Value)
	}

	if !*search {
		return
	}

	params := paramsFromComponents(components, *limit)
	if params.City == nil {
		log.Fatal("No city component parsed; cannot search")
	}

	config.LoadEnv()
	conn, err := db.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	result, err := store.New(conn.DB).Search(params)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("\n%d result(s), search type %s\n", len(result.Records), result.SearchType)
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	for _, r := range result.Records {
		street := ""
		if r.Street != nil {
			street = *r.Street
		}
		fmt.Printf("  %s  %s %s\n", r.PostalCode, r.City, street)
	}
}

// paramsFromComponents maps libpostal labels onto search filters.
func paramsFromComponents(components []postal.ParsedComponent, limit int) normalize.SearchParams {
	params := normalize.SearchParams{Limit: limit}

	for _, component := range components {
		value := strings.TrimSpace(component.Value)
		if value == "" {
			continue
		}
		switch component.Label {
		case "city", "city_district", "suburb":
			if params.City == nil {
				params.City = &value
			}
		case "road":
			params.Street = &value
		case "house_number":
			params.HouseNumber = &value
		case "state":
			params.Province = &value
		}
	}

	return params
}
