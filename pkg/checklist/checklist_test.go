package checklist_test

import (
	"testing"

	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func wfoChecklist() checklist.Checklist {
	return checklist.Checklist{
		Name:     "wfo",
		Format:   checklist.WFO,
		Statuses: []string{"Accepted", "Synonym", "Unchecked"},
		Ranks:    []string{"species", "genus"},
		Versions: []checklist.Version{
			{Tag: "201807", Date: "2018-07-01", Source: "a.zip", Member: "classification.txt"},
			{Tag: "202112", Date: "2021-12-01", Source: "b.zip", Member: "classification.txt"},
			{Tag: "202312", Date: "2023-12-01", Source: "c.zip",
				Member: "classification.csv", Encoding: "latin1"},
		},
	}
}

func TestValidate(t *testing.T) {
	reg := checklist.Registry{Checklists: []checklist.Checklist{wfoChecklist()}}
	require.NoError(t, reg.Validate())
	assert.Empty(t, reg.Warnings)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		msg    string
		change func(*checklist.Checklist)
	}{
		{"no name", func(c *checklist.Checklist) { c.Name = "" }},
		{"bad format", func(c *checklist.Checklist) { c.Format = "dwca" }},
		{"duplicate tag", func(c *checklist.Checklist) { c.Versions[1].Tag = "201807" }},
		{"bad date", func(c *checklist.Checklist) { c.Versions[0].Date = "2018/07" }},
		{"unordered", func(c *checklist.Checklist) { c.Versions[2].Date = "2019-01-01" }},
		{"no source", func(c *checklist.Checklist) { c.Versions[0].Source = "" }},
		{"bad separator", func(c *checklist.Checklist) { c.Separator = "||" }},
		{"bad encoding", func(c *checklist.Checklist) { c.Encoding = "koi8-r" }},
	}

	for _, v := range tests {
		cl := wfoChecklist()
		v.change(&cl)
		reg := checklist.Registry{Checklists: []checklist.Checklist{cl}}
		assert.Error(t, reg.Validate(), v.msg)
	}
}

func TestValidateWarnings(t *testing.T) {
	cl := wfoChecklist()
	cl.Statuses = nil
	cl.Versions = cl.Versions[:1]
	cl.Versions[0].Member = ""
	reg := checklist.Registry{Checklists: []checklist.Checklist{cl}}
	require.NoError(t, reg.Validate())

	var fields []string
	for _, w := range reg.Warnings {
		fields = append(fields, w.Field)
	}
	assert.ElementsMatch(t, []string{"versions", "statuses", "member"}, fields)
}

func TestSettings(t *testing.T) {
	cl := wfoChecklist()
	limit := 12
	cl.MaxUnresolved = &limit

	v, err := cl.Version("202312")
	require.NoError(t, err)
	assert.Equal(t, "\t", v.Separator)
	assert.Equal(t, "latin1", v.Encoding)
	assert.Equal(t, 12, v.Threshold(1_000))
	assert.Equal(t, cl.Statuses, v.Statuses)

	r, err := v.Rune()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)

	v, err = cl.Version("201807")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", v.Encoding)

	_, err = cl.Version("202501")
	assert.ErrorIs(t, err, checklist.ErrUnknownVersion)
}

func TestSequence(t *testing.T) {
	cl := wfoChecklist()

	vs, err := cl.Sequence(nil)
	require.NoError(t, err)
	assert.Len(t, vs, 3)

	vs, err = cl.Sequence([]string{"201807", "202312"})
	require.NoError(t, err)
	assert.Equal(t, "202312", vs[1].Tag)

	_, err = cl.Sequence([]string{"202312", "201807"})
	assert.Error(t, err)
}

func TestPairs(t *testing.T) {
	cl := wfoChecklist()
	assert.Len(t, cl.Pairs(), 3)

	cons := cl.Consecutive()
	require.Len(t, cons, 2)
	assert.Equal(t, "202112", cons[1].Old.Tag)
	assert.Equal(t, "202312", cons[1].New.Tag)
}

func TestRegistryChecklist(t *testing.T) {
	reg := checklist.Registry{Checklists: []checklist.Checklist{wfoChecklist()}}
	cl, err := reg.Checklist("wfo")
	require.NoError(t, err)
	assert.Equal(t, checklist.WFO, cl.Format)

	_, err = reg.Checklist("ipni")
	assert.ErrorIs(t, err, checklist.ErrUnknownChecklist)
}

func TestUnexpected(t *testing.T) {
	vocab := []string{"Accepted", "Synonym"}
	res := checklist.Unexpected(
		[]string{"Synonym", "Misapplied", "Accepted", "Doubtful", "Misapplied"},
		vocab,
	)
	assert.Equal(t, []string{"Doubtful", "Misapplied"}, res)
	assert.Nil(t, checklist.Unexpected([]string{"any"}, nil))
}

func TestThreshold(t *testing.T) {
	var v checklist.Version
	assert.Equal(t, 1_000, v.Threshold(1_000))

	data := `
name: wcvp
format: wcvp
max_unresolved: 5
versions:
  - tag: v10
    date: 2022-10-01
    source: wcvp_v10.csv
  - tag: v11
    date: 2023-04-01
    source: wcvp_v11.csv
    max_unresolved: 0
`
	var cl checklist.Checklist
	require.NoError(t, yaml.Unmarshal([]byte(data), &cl))

	v, err := cl.Version("v10")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Threshold(1_000))

	v, err = cl.Version("v11")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Threshold(1_000))
}
