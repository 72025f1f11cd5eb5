package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/labhub/core"
	"github.com/trezcool/labhub/core/catalog"
	"github.com/trezcool/labhub/core/report"
	"github.com/trezcool/labhub/core/viva"
	emailsvc "github.com/trezcool/labhub/services/email"
	inmemdb "github.com/trezcool/labhub/storage/inmem"
	"github.com/trezcool/labhub/tests"
)

type fakeGenerator struct {
	set viva.Set
	err error
	got viva.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req viva.Request) (viva.Set, error) {
	g.got = req
	return g.set, g.err
}

type testApp struct {
	Server
	catalogSvc *catalog.Service
	gen        *fakeGenerator
	mailSvc    *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := core.NewTestConfig()
	logger := testutil.NewLogger()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	src, lk := testutil.Sources()
	catalogSvc := catalog.NewService(testutil.NewStaticSource(src, lk), inmemdb.NewCatalogStore(db), catalog.DefaultOptions(), logger)
	if _, err = catalogSvc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	gen := &fakeGenerator{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	validate, translator := core.NewValidator()

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Catalogs:   catalogSvc,
		VivaGen:    gen,
		Reporter:   report.NewService(conf, mailSvc),
		Validate:   validate,
		Translator: translator,
	})
	t.Cleanup(func() { _ = server.Close() })
	return &testApp{Server: server, catalogSvc: catalogSvc, gen: gen, mailSvc: mailSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (tt httpTest) run(t *testing.T, app http.Handler) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newRequest(method, tt.path, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
