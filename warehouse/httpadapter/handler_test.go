package httpadapter_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/testutil/eventstorewrapper"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/observability"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/catalog"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/findonshelf"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/httpadapter"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/ordermanager"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/stockledger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testServer struct {
	server *httptest.Server
}

func setupTestServer(t *testing.T, opts ...httpadapter.Option) testServer {
	t.Helper()

	eventStore := eventstorewrapper.New(t)

	ledger, err := stockledger.New(eventStore)
	require.NoError(t, err)

	orders, err := ordermanager.New(eventStore, catalog.NewStaticCatalog("b1", "b2"))
	require.NoError(t, err)

	handler, err := httpadapter.NewHandler(ledger, orders, opts...)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return testServer{server: server}
}

func (s testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	status, raw := s.doRaw(t, method, path, body)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))

	return status, decoded
}

func (s testServer) doRaw(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()

	request, err := http.NewRequestWithContext(context.Background(), method, s.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	response, err := s.server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	return response.StatusCode, raw
}

func Test_Stock_PlaceAndRead(t *testing.T) {
	// setup
	s := setupTestServer(t)

	// act
	statusA, bodyA := s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"A1","numberOfBooks":5}`)
	statusB, _ := s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"B2","numberOfBooks":3}`)
	statusStock, bodyStock := s.do(t, http.MethodGet, "/warehouse/stock/b1", "")
	statusShelves, rawShelves := s.doRaw(t, http.MethodGet, "/warehouse/books/b1/shelves", "")

	// assert
	assert.Equal(t, http.StatusOK, statusA)
	assert.Equal(t, true, bodyA["success"])
	assert.Equal(t, http.StatusOK, statusB)
	assert.Equal(t, http.StatusOK, statusStock)
	assert.InDelta(t, 8, bodyStock["stock"], 0)
	assert.Equal(t, http.StatusOK, statusShelves)
	assert.JSONEq(t, `[{"shelf":"A1","count":5},{"shelf":"B2","count":3}]`, string(rawShelves))
}

func Test_Stock_UnknownBookHasNoStock(t *testing.T) {
	// setup
	s := setupTestServer(t)

	// act
	status, body := s.do(t, http.MethodGet, "/warehouse/stock/nope", "")
	shelvesStatus, rawShelves := s.doRaw(t, http.MethodGet, "/warehouse/books/nope/shelves", "")

	// assert
	assert.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 0, body["stock"], 0)
	assert.Equal(t, http.StatusOK, shelvesStatus)
	assert.JSONEq(t, `[]`, string(rawShelves))
}

func Test_Stock_Deduct(t *testing.T) {
	// setup
	s := setupTestServer(t)
	s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"A1","numberOfBooks":2}`)

	// act
	okStatus, _ := s.do(t, http.MethodPost, "/warehouse/stock/deduct", `{"bookId":"b1","shelf":"A1","numberOfBooks":1}`)
	conflictStatus, conflictBody := s.do(
		t, http.MethodPost, "/warehouse/stock/deduct", `{"bookId":"b1","shelf":"A1","numberOfBooks":5}`,
	)
	notFoundStatus, _ := s.do(t, http.MethodPost, "/warehouse/stock/deduct", `{"bookId":"b1","shelf":"Z9","numberOfBooks":1}`)

	// assert
	assert.Equal(t, http.StatusOK, okStatus)
	assert.Equal(t, http.StatusConflict, conflictStatus)
	assert.InDelta(t, 1, conflictBody["available"], 0)
	assert.InDelta(t, 5, conflictBody["requested"], 0)
	assert.Contains(t, conflictBody["error"], "insufficient stock")
	assert.Equal(t, http.StatusNotFound, notFoundStatus)
}

func Test_Stock_BadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "zero quantity", body: `{"bookId":"b1","shelf":"A1","numberOfBooks":0}`},
		{name: "missing shelf", body: `{"bookId":"b1","numberOfBooks":1}`},
		{name: "unknown field", body: `{"bookId":"b1","shelf":"A1","numberOfBooks":1,"color":"red"}`},
		{name: "malformed", body: `{"bookId":`},
		{name: "two objects", body: `{"bookId":"b1","shelf":"A1","numberOfBooks":1}{}`},
	}

	s := setupTestServer(t)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPost, "/warehouse/stock", tc.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["error"], "invalid argument")
		})
	}
}

func Test_Stock_BodyTooLarge(t *testing.T) {
	// setup
	s := setupTestServer(t, httpadapter.WithMaxBodyBytes(16))

	// act
	status, _ := s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"A1","numberOfBooks":1}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, status)
}

func Test_Orders_Lifecycle(t *testing.T) {
	// setup
	s := setupTestServer(t)
	s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"A1","numberOfBooks":5}`)

	// act
	placeStatus, placeBody := s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{"b1":2,"b2":1}}`)
	pendingStatus, rawPending := s.doRaw(t, http.MethodGet, "/warehouse/orders/pending", "")
	fulfillStatus, _ := s.do(
		t, http.MethodPost, "/warehouse/orders/1/fulfill",
		`{"fulfillments":[{"book":"b1","shelf":"A1","numberOfBooks":2}]}`,
	)
	orderStatus, orderBody := s.do(t, http.MethodGet, "/warehouse/orders/1", "")
	againStatus, _ := s.do(t, http.MethodPost, "/warehouse/orders/1/fulfill", `{"fulfillments":[]}`)
	_, stockBody := s.do(t, http.MethodGet, "/warehouse/stock/b1", "")
	_, rawPendingAfter := s.doRaw(t, http.MethodGet, "/warehouse/orders/pending", "")

	// assert
	assert.Equal(t, http.StatusOK, placeStatus)
	assert.Equal(t, "1", placeBody["orderId"])
	assert.Equal(t, http.StatusOK, pendingStatus)
	assert.JSONEq(t, `[{"orderId":"1","books":{"b1":2,"b2":1}}]`, string(rawPending))
	assert.Equal(t, http.StatusOK, fulfillStatus)
	assert.Equal(t, http.StatusOK, orderStatus)
	assert.Equal(t, core.OrderStatusFulfilled, orderBody["status"])
	assert.NotEmpty(t, orderBody["createdAt"])
	assert.Equal(t, http.StatusBadRequest, againStatus)
	assert.InDelta(t, 3, stockBody["stock"], 0)
	assert.JSONEq(t, `[]`, string(rawPendingAfter))
}

func Test_Orders_Errors(t *testing.T) {
	// setup
	s := setupTestServer(t)

	// act
	unknownBookStatus, _ := s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{"b9":1}}`)
	noBooksStatus, _ := s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{}}`)
	negativeStatus, _ := s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{"b1":-1}}`)
	unknownOrderStatus, _ := s.do(t, http.MethodGet, "/warehouse/orders/42", "")
	fulfillUnknownStatus, _ := s.do(t, http.MethodPost, "/warehouse/orders/42/fulfill", `{"fulfillments":[]}`)

	// assert
	assert.Equal(t, http.StatusNotFound, unknownBookStatus)
	assert.Equal(t, http.StatusBadRequest, noBooksStatus)
	assert.Equal(t, http.StatusBadRequest, negativeStatus)
	assert.Equal(t, http.StatusNotFound, unknownOrderStatus)
	assert.Equal(t, http.StatusNotFound, fulfillUnknownStatus)
}

func Test_Orders_LargeQuantityIsStoredWithoutExpansion(t *testing.T) {
	// setup
	s := setupTestServer(t)

	// act
	placeStatus, placeBody := s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{"b1":1000000000}}`)
	_, rawPending := s.doRaw(t, http.MethodGet, "/warehouse/orders/pending", "")

	// assert
	assert.Equal(t, http.StatusOK, placeStatus)
	assert.Equal(t, "1", placeBody["orderId"])
	assert.JSONEq(t, `[{"orderId":"1","books":{"b1":1000000000}}]`, string(rawPending))
}

func Test_Orders_FulfillmentShortageRollsBack(t *testing.T) {
	// setup
	s := setupTestServer(t)
	s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b1","shelf":"A1","numberOfBooks":2}`)
	s.do(t, http.MethodPost, "/warehouse/stock", `{"bookId":"b2","shelf":"B1","numberOfBooks":1}`)
	s.do(t, http.MethodPost, "/warehouse/orders", `{"books":{"b1":2,"b2":2}}`)

	// act
	status, body := s.do(
		t, http.MethodPost, "/warehouse/orders/1/fulfill",
		`{"fulfillments":[{"book":"b1","shelf":"A1","numberOfBooks":2},{"book":"b2","shelf":"B1","numberOfBooks":2}]}`,
	)

	// assert
	assert.Equal(t, http.StatusConflict, status)
	assert.InDelta(t, 1, body["available"], 0)
	assert.InDelta(t, 2, body["requested"], 0)

	_, stockBody := s.do(t, http.MethodGet, "/warehouse/stock/b1", "")
	assert.InDelta(t, 2, stockBody["stock"], 0)
}

func Test_CORS(t *testing.T) {
	// setup
	s := setupTestServer(t, httpadapter.WithCORSOrigins("https://shop.example"))

	request, err := http.NewRequestWithContext(
		context.Background(), http.MethodOptions, s.server.URL+"/warehouse/stock/b1", nil,
	)
	require.NoError(t, err)
	request.Header.Set("Origin", "https://shop.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodGet)

	// act
	response, err := s.server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	// assert
	assert.Equal(t, "https://shop.example", response.Header.Get("Access-Control-Allow-Origin"))
}

type failingLedger struct {
	err error
}

func (l failingLedger) PlaceStock(context.Context, string, string, int) error { return l.err }
func (l failingLedger) TotalStock(context.Context, string) (int, error)       { return 0, l.err }
func (l failingLedger) DeductStock(context.Context, string, string, int) error { return l.err }

func (l failingLedger) FindOnShelf(context.Context, string) ([]findonshelf.ShelfStock, error) {
	return nil, l.err
}

func Test_TechnicalErrorsAreHidden(t *testing.T) {
	// setup
	orders, err := ordermanager.New(eventstorewrapper.New(t), catalog.NewStaticCatalog())
	require.NoError(t, err)

	logger := observability.NewLoggerSpy()
	handler, err := httpadapter.NewHandler(
		failingLedger{err: errors.New("connection refused")},
		orders,
		httpadapter.WithContextualLogger(logger),
	)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/warehouse/stock/b1", nil)

	// act
	handler.ServeHTTP(recorder, request)

	// assert
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, recorder.Body.String())
	assert.True(t, logger.HasErrorLog("http request failed"))
}

func Test_NewHandler_Validation(t *testing.T) {
	orders, err := ordermanager.New(eventstorewrapper.New(t), catalog.NewStaticCatalog())
	require.NoError(t, err)

	_, err = httpadapter.NewHandler(nil, orders)
	assert.ErrorIs(t, err, httpadapter.ErrNilStockLedger)

	_, err = httpadapter.NewHandler(failingLedger{}, nil)
	assert.ErrorIs(t, err, httpadapter.ErrNilOrderManager)

	_, err = httpadapter.NewHandler(failingLedger{}, orders, httpadapter.WithMaxBodyBytes(0))
	assert.ErrorIs(t, err, httpadapter.ErrInvalidMaxBodyBytes)

	_, err = httpadapter.NewHandler(failingLedger{}, orders, httpadapter.WithRequestTimeout(0))
	assert.ErrorIs(t, err, httpadapter.ErrInvalidRequestTimeout)
}
