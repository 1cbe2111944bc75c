package cmd

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/minerguide/pilotd/pkg/eveapi"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetBody = `<eveapi version="2"><result>
<rowset name="skills"><row typeID="3386" level="4"/></rowset>
<rowset name="implants"><row typeID="22570"/></rowset>
</result></eveapi>`

func newTestRoster(t *testing.T, f eveapi.Fetcher) *roster.Roster {
	t.Helper()
	r := roster.New(roster.Options{Fetcher: f, Stors: stor.NewInMemoryStors()})
	_, err := r.AddAPIKey(1234, "vcode")
	require.NoError(t, err)
	_, err = r.AddPilot(1234, 90000001, "Miner Bob")
	require.NoError(t, err)
	return r
}

func TestFormatColumnHeader(t *testing.T) {
	tests := []struct {
		col      string
		expected string
	}{
		{col: "pilot_id", expected: "Pilot Id"},
		{col: "name", expected: "Name"},
		{col: "implant-id", expected: "Implant Id"},
	}

	for _, test := range tests {
		t.Run(test.col, func(t *testing.T) {
			assert.Equal(t, test.expected, formatColumnHeader(test.col))
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "90000001"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 90000001}, ids)

	_, err = parseIDs([]string{"bob"})
	assert.Error(t, err)
}

func TestWritePilot(t *testing.T) {
	r := newTestRoster(t, eveapi.NewMockClient())
	p, _ := r.Get(90000001)
	p.SetSkillLevel(pilot.SkillMining, 5)
	michi, _ := r.Catalog().Lookup(22535)
	p.SetImplant(implant.Slot7, michi)

	var buf bytes.Buffer
	writePilot(&buf, p)

	out := buf.String()
	assert.Contains(t, out, "Miner Bob (90000001)")
	assert.Contains(t, out, "Mining")
	assert.Contains(t, out, "Michi's Excavation Augmentor")
	assert.Contains(t, out, "<nothing>")
}

func TestRunRefresh(t *testing.T) {
	m := eveapi.NewMockClient()
	m.SetResponse(eveapi.CharacterSheetPath, sheetBody)
	r := newTestRoster(t, m)

	failures := runRefresh(context.Background(), r, []int{90000001, 42})
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[42], roster.ErrUnknownPilot)

	p, _ := r.Get(90000001)
	assert.Equal(t, 4, p.SkillLevel(pilot.SkillMining))

	var buf bytes.Buffer
	writeRefreshTable(&buf, r, []int{90000001, 42}, failures)
	assert.Contains(t, buf.String(), "committed")
	assert.Contains(t, buf.String(), "unknown pilot")
	assert.NotContains(t, buf.String(), "fetch failed")
}

func TestRefreshResult(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Success", err: nil, expected: "committed"},
		{name: "Unknown pilot", err: fmt.Errorf("%w: 42", roster.ErrUnknownPilot), expected: "unknown pilot"},
		{name: "Refresh failure", err: &pilot.RefreshError{State: pilot.MissingImplants}, expected: "missing implants"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, refreshResult(test.err))
		})
	}
}

func TestRekeyPilot(t *testing.T) {
	r := newTestRoster(t, eveapi.NewMockClient())
	_, err := r.AddAPIKey(5678, "other")
	require.NoError(t, err)

	require.NoError(t, rekeyPilot(r, 90000001, 5678))
	p, ok := r.Get(90000001)
	require.True(t, ok)
	assert.Equal(t, 5678, p.Owner().KeyID())

	assert.ErrorIs(t, rekeyPilot(r, 90000001, 999), roster.ErrUnknownKey)
	assert.ErrorIs(t, rekeyPilot(r, 42, 5678), roster.ErrUnknownPilot)
}

func TestWriteImplants(t *testing.T) {
	var buf bytes.Buffer
	writeImplants(&buf, implant.Builtin())

	out := buf.String()
	assert.Contains(t, out, "Michi's Excavation Augmentor")
	assert.Contains(t, out, "22570")
	assert.Contains(t, out, "27105")
}

func TestRunRefreshAll(t *testing.T) {
	m := eveapi.NewMockClient()
	m.SetResponse(eveapi.CharacterSheetPath, `<eveapi version="2"><error code="203">Authentication failure.</error></eveapi>`)
	r := newTestRoster(t, m)

	failures := runRefresh(context.Background(), r, nil)
	require.Len(t, failures, 1)
	assert.Equal(t, pilot.RemoteError, pilot.RefreshStateOf(failures[90000001]))
	assert.Equal(t, 1, refreshCount(r, nil))

	var buf bytes.Buffer
	writeRefreshTable(&buf, r, nil, failures)
	assert.Contains(t, buf.String(), "remote error")
}
