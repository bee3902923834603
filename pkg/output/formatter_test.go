package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"-"`
	Stock  int
}

type fixedTable struct{}

func (fixedTable) Header() []string { return []string{"ID", "NAME"} }
func (fixedTable) Rows() [][]string { return [][]string{{"c-1", "Ada"}, {"c-2", "Bo"}} }

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, NewFormatter(""))
	assert.IsType(t, &JSONFormatter{}, NewFormatter("JSON"))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter("yml"))
}

func TestTableFormatter_Slice(t *testing.T) {
	out := (&TableFormatter{}).Format([]row{{ID: "a", Name: "Lamp", Secret: "x", Stock: 3}})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "STOCK"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"a", "Lamp", "3"}, strings.Fields(lines[1]))
	assert.NotContains(t, out, "x ")
}

func TestTableFormatter_Struct(t *testing.T) {
	out := (&TableFormatter{}).Format(&row{ID: "a", Name: "Lamp"})
	assert.Contains(t, out, "id:")
	assert.Contains(t, out, "Lamp")
	assert.Contains(t, out, "Stock:")
}

func TestTableFormatter_Empty(t *testing.T) {
	assert.Equal(t, "No records found.\n", (&TableFormatter{}).Format([]row{}))
}

func TestTableFormatter_Table(t *testing.T) {
	out := (&TableFormatter{}).Format(fixedTable{})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, []string{"c-2", "Bo"}, strings.Fields(lines[2]))
}

func TestJSONAndYAML(t *testing.T) {
	data := row{ID: "a", Name: "Lamp"}
	assert.Contains(t, (&JSONFormatter{}).Format(data), `"name": "Lamp"`)
	assert.Contains(t, (&YAMLFormatter{}).Format(data), "name: Lamp")
}
