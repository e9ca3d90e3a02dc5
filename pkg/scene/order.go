package scene

import (
	"fmt"
	"sort"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/geometry"
)

// Order controls how a scene arranges its objects. The tracer takes the
// first hit in list order, so the order decides which of two overlapping
// objects is seen. NearToFar gives conventional occlusion between spheres
// and cubes.
type Order int

const (
	OrderAsGiven Order = iota
	OrderFarToNear
	OrderNearToFar
)

func (o Order) String() string {
	switch o {
	case OrderAsGiven:
		return "as-given"
	case OrderFarToNear:
		return "far-to-near"
	case OrderNearToFar:
		return "near-to-far"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseOrder converts a name produced by String back to an Order.
// The empty string is OrderAsGiven.
func ParseOrder(name string) (Order, error) {
	switch name {
	case "", "as-given":
		return OrderAsGiven, nil
	case "far-to-near":
		return OrderFarToNear, nil
	case "near-to-far":
		return OrderNearToFar, nil
	default:
		return OrderAsGiven, fmt.Errorf("unknown object order %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Apply returns objects arranged by distance from eye. Planes have no
// meaningful distance and keep their relative order after every other object.
// Equal distances keep their given order.
func (o Order) Apply(objects []geometry.Object, eye core.Vec3) []geometry.Object {
	ordered := append([]geometry.Object(nil), objects...)
	if o == OrderAsGiven {
		return ordered
	}

	var solids, planes []geometry.Object
	for _, obj := range ordered {
		if obj.Kind() == geometry.KindPlane {
			planes = append(planes, obj)
		} else {
			solids = append(solids, obj)
		}
	}

	distance := func(obj geometry.Object) float64 {
		return obj.Center().Subtract(eye).LengthSquared()
	}
	sort.SliceStable(solids, func(i, j int) bool {
		if o == OrderFarToNear {
			return distance(solids[i]) > distance(solids[j])
		}
		return distance(solids[i]) < distance(solids[j])
	})

	return append(solids, planes...)
}
