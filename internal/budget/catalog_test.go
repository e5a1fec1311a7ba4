package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `categoria,semanal,mensual,anual
Comida,100,,
transporte,,120,
ocio,50,200,
salud,,,600
`

func TestCatalog_ParseKeepsFileOrder(t *testing.T) {
	catalog, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, []string{"comida", "transporte", "ocio", "salud"}, catalog.Categories())
	require.Equal(t, 4, catalog.Len())
}

func TestCatalog_RuleLimits(t *testing.T) {
	catalog, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	rule, ok := catalog.Rule("comida")
	require.True(t, ok)
	require.NotNil(t, rule.Weekly)
	require.Equal(t, 100.0, *rule.Weekly)
	require.Nil(t, rule.Monthly)
	require.Nil(t, rule.Annual)

	rule, ok = catalog.Rule("ocio")
	require.True(t, ok)
	require.Equal(t, 50.0, *rule.Weekly)
	require.Equal(t, 200.0, *rule.Monthly)
	require.Nil(t, rule.Annual)

	rule, ok = catalog.Rule("salud")
	require.True(t, ok)
	require.Nil(t, rule.Weekly)
	require.Nil(t, rule.Monthly)
	require.Equal(t, 600.0, *rule.Annual)

	_, ok = catalog.Rule("desconocida")
	require.False(t, ok)
}

func TestCatalog_LookupIgnoresCase(t *testing.T) {
	catalog, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.True(t, catalog.Has("COMIDA"))
	require.True(t, catalog.Has("Comida"))
}

func TestCatalog_RejectsReservedCategory(t *testing.T) {
	_, err := Parse(strings.NewReader("categoria,semanal,mensual,anual\nahorro,100,,\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reserved")
}

func TestCatalog_RejectsDuplicateCategory(t *testing.T) {
	_, err := Parse(strings.NewReader("categoria,semanal,mensual,anual\ncomida,100,,\nComida,,50,\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
}

func TestCatalog_RejectsBadLimits(t *testing.T) {
	_, err := Parse(strings.NewReader("categoria,semanal,mensual,anual\ncomida,cien,,\n"))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("categoria,semanal,mensual,anual\ncomida,-5,,\n"))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("categoria,semanal,mensual,anual\ncomida,0,,\n"))
	require.Error(t, err)
}

func TestCatalog_RejectsUnexpectedHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("category,weekly,monthly,annual\ncomida,100,,\n"))
	require.Error(t, err)
}
