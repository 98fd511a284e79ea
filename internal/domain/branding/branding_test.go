package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_CaseInsensitive(t *testing.T) {
	want := Theme{Name: "MAPFRE", PrimaryColor: "#E30613", SecondaryColor: "#FFFFFF"}

	assert.Equal(t, want, Resolve("mapfre"))
	assert.Equal(t, want, Resolve("MAPFRE"))
	assert.Equal(t, want, Resolve(" MAPFRE"))
	assert.Equal(t, want, Resolve("Mapfre "))
}

func TestResolve_KnownBrands(t *testing.T) {
	cases := map[string]string{
		"allianz":  "Allianz",
		"AXA":      "AXA",
		"occident": "Occident",
	}
	for in, name := range cases {
		t.Run(in, func(t *testing.T) {
			got := Resolve(in)
			assert.Equal(t, name, got.Name)
			assert.NotEqual(t, Generic().PrimaryColor, got.PrimaryColor)
		})
	}
}

func TestResolve_UnknownKeepsCallerName(t *testing.T) {
	got := Resolve("UnknownCo")

	assert.Equal(t, "UnknownCo", got.Name)
	assert.Equal(t, Generic().PrimaryColor, got.PrimaryColor)
	assert.Equal(t, Generic().SecondaryColor, got.SecondaryColor)
}

func TestResolve_Empty(t *testing.T) {
	assert.Equal(t, Generic(), Resolve(""))
	assert.Equal(t, Generic(), Resolve("   "))
	assert.Equal(t, "Seguros Global", Resolve("").Name)
}

func TestResolve_Deterministic(t *testing.T) {
	for _, in := range []string{"", "axa", "Foo Mutual"} {
		assert.Equal(t, Resolve(in), Resolve(in))
	}
}

func TestKnownAndBrands(t *testing.T) {
	assert.True(t, Known("axa"))
	assert.False(t, Known("generic"))
	assert.False(t, Known(""))
	assert.False(t, Known("UnknownCo"))

	b := Brands()
	assert.Equal(t, []string{"MAPFRE", "ALLIANZ", "AXA", "OCCIDENT"}, b)
	b[0] = "mutated"
	assert.Equal(t, "MAPFRE", Brands()[0])
}
