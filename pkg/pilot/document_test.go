package pilot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	p := New(90000001, "Miner Bob", testKey)
	p.SetSkillLevel(SkillMining, 5)
	p.SetSkillLevel(SkillAstrogeology, 3)
	p.SetImplant(implant.Slot10, yeti)

	doc := p.Serialize()
	assert.Equal(t, "90000001", doc.ID)
	assert.Equal(t, "Miner Bob", doc.Name)
	assert.Equal(t, []SkillEntry{{ID: "3386", Value: "5"}, {ID: "3410", Value: "3"}}, doc.Skills.Entries)
	assert.Equal(t, []ImplantEntry{{ID: "301"}}, doc.Implants.Entries)

	b, err := p.Marshal()
	require.NoError(t, err)
	xmlText := string(b)
	assert.True(t, strings.HasPrefix(xmlText, `<character id="90000001">`), xmlText)
	assert.Contains(t, xmlText, `<name>Miner Bob</name>`)
	assert.Contains(t, xmlText, `<skill id="3386" value="5"></skill>`)
	assert.Contains(t, xmlText, `<implant id="301"></implant>`)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		skills   map[int]int
		implants []*implant.Implant
	}{
		{name: "Blank pilot", skills: map[int]int{}},
		{name: "Skills only", skills: map[int]int{SkillMining: 5, SkillIceHarvesting: 0, 123: 1}},
		{name: "All slots", skills: map[int]int{SkillMiningBarge: 4}, implants: []*implant.Implant{excavator, upgrades, yeti}},
		{name: "One slot", skills: map[int]int{}, implants: []*implant.Implant{upgrades}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := New(42, "Round <Trip> & Co", testKey)
			for id, level := range test.skills {
				p.SetSkillLevel(id, level)
			}
			for _, imp := range test.implants {
				p.SetImplant(imp.Slot, imp)
			}

			b, err := p.Marshal()
			require.NoError(t, err)

			other := APIKey{ID: 7}
			got, err := Unmarshal(b, other, testCatalog)
			require.NoError(t, err)

			assert.Equal(t, p.ID(), got.ID())
			assert.Equal(t, p.Name(), got.Name())
			assert.Equal(t, other, got.Owner())
			if diff := cmp.Diff(p.Skills(), got.Skills()); diff != "" {
				t.Errorf("skills differ (-want +got):\n%s", diff)
			}
			assert.Equal(t, p.Implants(), got.Implants())
		})
	}
}

func TestDeserializeDropsUnknownImplants(t *testing.T) {
	doc := `<character id="5"><name>Bob</name><skills/><implants><implant id="201"/><implant id="555"/></implants></character>`

	p, err := Unmarshal([]byte(doc), testKey, testCatalog)
	require.NoError(t, err)
	assert.Same(t, upgrades, p.Implant(implant.Slot8))
	assert.Same(t, implant.Nothing, p.Implant(implant.Slot7))
	assert.Same(t, implant.Nothing, p.Implant(implant.Slot10))

	p, err = Unmarshal([]byte(doc), testKey, nil)
	require.NoError(t, err)
	assert.Same(t, implant.Nothing, p.Implant(implant.Slot8), "no catalog resolves nothing")
}

func TestDeserializeWithoutSections(t *testing.T) {
	p, err := Unmarshal([]byte(`<character id="5"><name>Bob</name></character>`), testKey, testCatalog)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID())
	assert.Empty(t, p.Skills())
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "Missing id", doc: `<character><name>Bob</name></character>`},
		{name: "Blank id", doc: `<character id=" "><name>Bob</name></character>`},
		{name: "Malformed id", doc: `<character id="bob"><name>Bob</name></character>`},
		{name: "Malformed skill id", doc: `<character id="1"><skills><skill id="x" value="1"/></skills></character>`},
		{name: "Missing skill value", doc: `<character id="1"><skills><skill id="3386"/></skills></character>`},
		{name: "Malformed implant id", doc: `<character id="1"><implants><implant id="?"/></implants></character>`},
		{name: "Not XML", doc: `character id=1`},
		{name: "Wrong root", doc: `<pilot id="1"/>`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := Unmarshal([]byte(test.doc), testKey, testCatalog)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrBadDocument)
			assert.NotErrorIs(t, err, ErrMalformedData, "document errors are not refresh errors")
		})
	}

	_, err := Deserialize(nil, testKey, testCatalog)
	assert.ErrorIs(t, err, ErrBadDocument)
}

func TestDocumentWriteTo(t *testing.T) {
	p := New(3, "Writer", nil)
	var buf bytes.Buffer
	n, err := p.Serialize().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	doc, err := ReadDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "3", doc.ID)
	assert.Equal(t, "Writer", doc.Name)
}
