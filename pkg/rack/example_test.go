package rack_test

import (
	"fmt"

	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

func ExampleCanPlace() {
	types := rack.NewCatalog(
		rack.DeviceType{Slug: "server-2u", Height: 2},
		rack.DeviceType{Slug: "patch-1u", Height: 1, IsFullDepth: rack.Bool(false)},
	)
	r := rack.New("r1", "Lab", 12)
	r.Devices = append(r.Devices, rack.PlacedDevice{
		ID: "srv", DeviceType: "server-2u", Position: 5, Face: rack.FaceFront,
	})

	patch, _ := types.DeviceType("patch-1u")
	fmt.Println(rack.CanPlace(&r, types, rack.CandidateFor(patch, rack.FaceFront), 6))
	fmt.Println(rack.CanPlace(&r, types, rack.CandidateFor(patch, rack.FaceFront), 7))
	fmt.Println(rack.CanPlace(&r, types, rack.NewCandidate(2), 11))
	fmt.Println(rack.CanPlace(&r, types, rack.NewCandidate(2), 12))
	// Output:
	// false
	// true
	// true
	// false
}

func ExampleFindValidSlots() {
	types := rack.NewCatalog(rack.DeviceType{Slug: "ups-4u", Height: 4})
	r := rack.New("r1", "Edge", 8)
	r.Devices = append(r.Devices, rack.PlacedDevice{
		ID: "ups", DeviceType: "ups-4u", Position: 1, Face: rack.FaceFront,
	})

	fmt.Println(rack.FindValidSlots(&r, types, rack.NewCandidate(2)))
	// Output: [5 6 7]
}
