package system

import (
	"testing"

	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs/component"
)

func TestClassify(t *testing.T) {
	terrain := testTerrain(t)

	body := func(centerX, bottom float64, blocked bool) *component.Body {
		return &component.Body{X: centerX - 12, Y: bottom - 40, W: 24, H: 40, BlockedBelow: blocked}
	}

	cases := []struct {
		name    string
		body    *component.Body
		chimney bool
		want    component.GroundedType
		column  common.Rect
	}{
		{name: "not blocked is airborne", body: body(48, 96, false), want: component.Airborne},
		{name: "blocked over ground", body: body(48, 96, true), want: component.NormalGround},
		{name: "on chimney top", body: body(144, 32, true), want: component.ChimneySurface, column: capColumn},
		{name: "chimney wins when straddling", body: body(128, 32, true), want: component.ChimneySurface, column: capColumn},
		{name: "solid tagged tile is ground", body: body(272, 32, true), want: component.NormalGround},
		{name: "empty band is airborne", body: body(48, 32, true), want: component.Airborne},
		{name: "off the map", body: body(1000, 96, true), want: component.Airborne},
		{name: "chimney mode over empty shaft", body: body(144, 64, false), chimney: true, want: component.Airborne},
		{name: "chimney mode reaching the floor", body: body(144, 70, false), chimney: true, want: component.NormalGround},
		{name: "chimney mode reaching the top", body: body(144, 60, false), chimney: true, want: component.ChimneySurface, column: capColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, column := Classify(tc.body, tc.chimney, terrain)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if column != tc.column {
				t.Fatalf("expected column %+v, got %+v", tc.column, column)
			}
		})
	}
}

func TestClassifyWithoutTerrain(t *testing.T) {
	got, _ := Classify(&component.Body{BlockedBelow: true, W: 10, H: 10}, false, nil)
	if got != component.Airborne {
		t.Fatalf("expected airborne, got %s", got)
	}
}

func TestTerrainCollisionReclassifiesEveryTick(t *testing.T) {
	tw := newTestWorld(t)

	tw.standAt(144, 32)
	tw.collision.Update(tw.w)
	if tw.grounded().Type != component.ChimneySurface {
		t.Fatalf("expected chimney surface, got %s", tw.grounded().Type)
	}

	tw.body().BlockedBelow = false
	tw.collision.Update(tw.w)
	if tw.grounded().Type != component.Airborne {
		t.Fatalf("expected airborne after losing contact, got %s", tw.grounded().Type)
	}
}
