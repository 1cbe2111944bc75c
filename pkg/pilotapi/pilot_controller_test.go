package pilotapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/minerguide/pilotd/pkg/eveapi"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bobID = 90000001

	sheetBody = `<eveapi version="2"><result>
<rowset name="skills"><row typeID="3386" level="4"/></rowset>
<rowset name="implants"><row typeID="22570"/></rowset>
</result></eveapi>`
)

func newTestRoster(t *testing.T, f eveapi.Fetcher) *roster.Roster {
	t.Helper()
	r := roster.New(roster.Options{Fetcher: f, Stors: stor.NewInMemoryStors()})
	_, err := r.AddAPIKey(1234, "vcode")
	require.NoError(t, err)
	_, err = r.AddPilot(1234, bobID, "Miner Bob")
	require.NoError(t, err)
	return r
}

// setupEchoContext creates a test Echo context for a request with path params.
func setupEchoContext(method, target string, body []byte, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return c, rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) PilotView {
	t.Helper()
	var view PilotView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, code, httpErr.Code)
}

func TestListPilots(t *testing.T) {
	controller := NewPilotController(newTestRoster(t, eveapi.NewMockClient()))

	ctx, rec := setupEchoContext(http.MethodGet, "/api/pilots", nil, nil)
	require.NoError(t, controller.ListPilots(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var summaries []PilotSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Equal(t, []PilotSummary{{ID: bobID, Name: "Miner Bob", Slug: "miner-bob", APIKeyID: 1234}}, summaries)
}

func TestGetPilot(t *testing.T) {
	controller := NewPilotController(newTestRoster(t, eveapi.NewMockClient()))

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{name: "Known pilot", id: "90000001", status: http.StatusOK},
		{name: "Unknown pilot", id: "42", status: http.StatusNotFound},
		{name: "Bad id", id: "bob", status: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx, rec := setupEchoContext(http.MethodGet, "/api/pilots/"+test.id, nil, map[string]string{"id": test.id})
			err := controller.GetPilot(ctx)
			if test.status != http.StatusOK {
				requireHTTPError(t, err, test.status)
				return
			}

			require.NoError(t, err)
			view := decodeView(t, rec)
			assert.Equal(t, "Miner Bob", view.Name)
			require.Len(t, view.Implants, 3)
			assert.Equal(t, implant.Slot10, view.Implants[2].Slot)
			assert.Equal(t, implant.Nothing.Name, view.Implants[2].Implant.Name)
		})
	}
}

func TestGetPilotBySlug(t *testing.T) {
	controller := NewPilotController(newTestRoster(t, eveapi.NewMockClient()))

	ctx, rec := setupEchoContext(http.MethodGet, "/api/pilots/by-slug/miner-bob", nil, map[string]string{"slug": "miner-bob"})
	require.NoError(t, controller.GetPilotBySlug(ctx))
	assert.Equal(t, bobID, decodeView(t, rec).ID)

	ctx, _ = setupEchoContext(http.MethodGet, "/api/pilots/by-slug/nobody", nil, map[string]string{"slug": "nobody"})
	requireHTTPError(t, controller.GetPilotBySlug(ctx), http.StatusNotFound)
}

func TestGetPilotDocument(t *testing.T) {
	r := newTestRoster(t, eveapi.NewMockClient())
	p, _ := r.Get(bobID)
	p.SetSkillLevel(pilot.SkillMining, 5)
	controller := NewPilotController(r)

	ctx, rec := setupEchoContext(http.MethodGet, "/api/pilots/90000001/document", nil, map[string]string{"id": "90000001"})
	require.NoError(t, controller.GetPilotDocument(ctx))
	assert.Equal(t, echo.MIMEApplicationXMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))

	got, err := pilot.Unmarshal(rec.Body.Bytes(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, got.SkillLevel(pilot.SkillMining))
}

func TestSetSkillLevel(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "Valid level", body: `{"level": 4}`, expected: 4},
		{name: "Out of range level is ignored", body: `{"level": 9}`, expected: 1},
		{name: "Missing level is ignored", body: `{}`, expected: 1},
		{name: "Empty body is ignored", body: ``, expected: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRoster(t, eveapi.NewMockClient())
			p, _ := r.Get(bobID)
			p.SetSkillLevel(pilot.SkillMining, 1)
			controller := NewPilotController(r)

			params := map[string]string{"id": "90000001", "skill": "3386"}
			ctx, rec := setupEchoContext(http.MethodPut, "/api/pilots/90000001/skills/3386", []byte(test.body), params)
			require.NoError(t, controller.SetSkillLevel(ctx))
			assert.Equal(t, test.expected, decodeView(t, rec).Skills[pilot.SkillMining])
			assert.Equal(t, test.expected, p.SkillLevel(pilot.SkillMining))
		})
	}
}

func TestSetImplant(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		body     string
		expected int
		status   int
	}{
		{name: "Catalog implant for the slot", slot: "8", body: `{"implant_id": 22570}`, expected: 22570, status: http.StatusOK},
		{name: "Implant for another slot is ignored", slot: "8", body: `{"implant_id": 22535}`, expected: 27150, status: http.StatusOK},
		{name: "Unknown implant is ignored", slot: "8", body: `{"implant_id": 77777}`, expected: 27150, status: http.StatusOK},
		{name: "Zero clears the slot", slot: "8", body: `{"implant_id": 0}`, expected: 0, status: http.StatusOK},
		{name: "Invalid slot", slot: "9", body: `{"implant_id": 22570}`, status: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRoster(t, eveapi.NewMockClient())
			p, _ := r.Get(bobID)
			mu, ok := r.Catalog().Lookup(27150)
			require.True(t, ok)
			p.SetImplant(implant.Slot8, mu)
			controller := NewPilotController(r)

			params := map[string]string{"id": "90000001", "slot": test.slot}
			ctx, _ := setupEchoContext(http.MethodPut, "/api/pilots/90000001/implants/"+test.slot, []byte(test.body), params)
			err := controller.SetImplant(ctx)
			if test.status != http.StatusOK {
				requireHTTPError(t, err, test.status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, p.Implant(implant.Slot8).ID)
		})
	}
}

func TestRefreshPilot(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "Refresh succeeds", body: sheetBody, status: http.StatusOK},
		{name: "Fetch fails", err: eveapi.ErrTransport, status: http.StatusBadGateway},
		{name: "Unparseable answer", body: "<eveapi>", status: http.StatusBadGateway},
		{name: "Remote error", body: `<eveapi version="2"><error code="203">Authentication failure.</error></eveapi>`, status: http.StatusBadGateway},
		{name: "Missing skills", body: `<eveapi version="2"><result><rowset name="implants"/></result></eveapi>`, status: http.StatusUnprocessableEntity},
		{name: "Malformed row", body: `<eveapi version="2"><result><rowset name="skills"><row typeID="x" level="1"/></rowset><rowset name="implants"/></result></eveapi>`, status: http.StatusUnprocessableEntity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := eveapi.NewMockClient()
			m.SetResponse(eveapi.CharacterSheetPath, test.body)
			m.SetError(test.err)
			controller := NewPilotController(newTestRoster(t, m))

			ctx, rec := setupEchoContext(http.MethodPost, "/api/pilots/90000001/refresh", nil, map[string]string{"id": "90000001"})
			err := controller.RefreshPilot(ctx)
			if test.status != http.StatusOK {
				requireHTTPError(t, err, test.status)
				return
			}

			require.NoError(t, err)
			view := decodeView(t, rec)
			assert.Equal(t, map[int]int{pilot.SkillMining: 4}, view.Skills)
			assert.Equal(t, 22570, view.Implants[1].Implant.ID)
		})
	}

	t.Run("Unknown pilot", func(t *testing.T) {
		controller := NewPilotController(newTestRoster(t, eveapi.NewMockClient()))
		ctx, _ := setupEchoContext(http.MethodPost, "/api/pilots/42/refresh", nil, map[string]string{"id": "42"})
		requireHTTPError(t, controller.RefreshPilot(ctx), http.StatusNotFound)
	})
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	SetupRoutes(e, RouteOpts{Roster: newTestRoster(t, eveapi.NewMockClient()), Token: "secret"})

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{name: "Token in header", target: "/api/pilots/90000001", header: "secret", status: http.StatusOK},
		{name: "Token in query", target: "/api/pilots/by-slug/miner-bob?pilotd_token=secret", status: http.StatusOK},
		{name: "Wrong token", target: "/api/pilots", header: "nope", status: http.StatusUnauthorized},
		{name: "No token", target: "/api/pilots", status: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, test.target, nil)
			if test.header != "" {
				req.Header.Set("pilotd_token", test.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, test.status, rec.Code)
			if test.status == http.StatusOK {
				assert.True(t, strings.Contains(rec.Body.String(), `"name":"Miner Bob"`))
			}
		})
	}
}
