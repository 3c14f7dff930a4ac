// Package main demonstrates the optimizer core end to end against a small
// synthetic hotel layout.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/roomshift/internal/config"
	"github.com/gitrdm/roomshift/internal/orchestrator"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

func main() {
	log := hclog.New(&hclog.LoggerOptions{
		Name:  "roomshift-example",
		Level: hclog.Info,
	})

	fmt.Println("=== roomshift example ===")
	fmt.Println()

	bd := buildingLayout()
	staff := staffRoster()
	dist := staffDistributions()
	constraints := staffConstraints()

	cfg := config.New(
		config.WithRequestedSolutions(3),
		config.WithMaxStaffPerFloorRange(2, 4),
	)

	results, err := orchestrator.Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimize: %v\n", err)
		os.Exit(1)
	}

	for i, r := range results {
		fmt.Printf("--- candidate %d (complete=%v) ---\n", i+1, r.IsComplete)
		for _, st := range staff {
			a, ok := r.Assignments[st.Name]
			if !ok {
				continue
			}
			fmt.Printf("  %-8s rooms=%d floors=%v\n", st.Name, a.TotalRooms(), a.Floors())
		}
		fmt.Printf("  unassigned: normal=%d eco=%d\n",
			r.UnassignedRooms.TotalNormalUnassigned(), r.UnassignedRooms.TotalEcoUnassigned())
		fmt.Println()
	}
}

func buildingLayout() *roommodel.BuildingData {
	floor := func(num int, main bool, counts map[string]int, eco int) roommodel.FloorInfo {
		f, err := roommodel.NewFloorInfo(num, main, counts, eco)
		if err != nil {
			panic(err)
		}
		return f
	}

	mainFloors := []roommodel.FloorInfo{
		floor(1, true, map[string]int{"S": 6, "T": 4}, 2),
		floor(2, true, map[string]int{"S": 5, "T": 5}, 2),
		floor(3, true, map[string]int{"S": 4, "T": 4}, 0),
	}
	annexFloors := []roommodel.FloorInfo{
		floor(1, false, map[string]int{"S": 4, "T": 2}, 1),
		floor(2, false, map[string]int{"S": 3, "T": 3}, 1),
	}
	return roommodel.NewBuildingData(mainFloors, annexFloors)
}

func staffRoster() []roommodel.Staff {
	return []roommodel.Staff{
		{Name: "akiko", ID: "001"},
		{Name: "bunta", ID: "002"},
		{Name: "chiyo", ID: "003"},
		{Name: "daisuke", ID: "004"},
	}
}

func staffDistributions() map[string]roommodel.StaffDistribution {
	return map[string]roommodel.StaffDistribution{
		"akiko":    {MainSingle: 6, MainTwin: 2, MainEco: 1, Building: roommodel.BuildingBoth},
		"bunta":    {MainSingle: 4, MainTwin: 4, AnnexSingle: 2, Building: roommodel.BuildingBoth},
		"chiyo":    {AnnexSingle: 5, AnnexTwin: 3, AnnexEco: 2, Building: roommodel.BuildingAnnexOnly},
		"daisuke":  {MainSingle: 5, MainTwin: 2, MainEco: 1, AnnexEco: 0, Building: roommodel.BuildingBoth, IsBathCleaner: true},
	}
}

func staffConstraints() map[string]roommodel.StaffPointConstraint {
	return map[string]roommodel.StaffPointConstraint{
		"akiko":   {Constraint: roommodel.NoConstraint(), Building: roommodel.BuildingBoth},
		"bunta":   {Constraint: roommodel.LowerRange(4, 10), Building: roommodel.BuildingBoth},
		"chiyo":   {Constraint: roommodel.NoConstraint(), Building: roommodel.BuildingAnnexOnly},
		"daisuke": {Constraint: roommodel.NoConstraint(), Building: roommodel.BuildingBoth, IsBathCleaner: true},
	}
}
