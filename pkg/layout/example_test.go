package layout_test

import (
	"fmt"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/history"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

func Example() {
	l := layout.New("lab", layout.WithDefaults(layout.Defaults{Height: 12}))
	h := history.New(50)

	add, _ := l.PlanAddDeviceType(rack.DeviceType{Slug: "server-2u", Height: 2})
	h.Execute(add)

	place, _ := l.PlanPlace("server-2u", 5, rack.FaceFront, "db01")
	h.Execute(place)

	_, err := l.PlanPlace("server-2u", 6, rack.FaceFront, "db02")
	fmt.Println(errors.UserMessage(err))

	h.Undo()
	fmt.Println(len(l.Rack().Devices), h.RedoDescription())
	// Output:
	// slot 6 (front) is blocked by db01
	// 0 Place db01
}
