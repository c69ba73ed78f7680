package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New("keyTEST", "appTEST", zap.NewNop().Sugar())
	require.NoError(t, err)
	return c.WithBaseURL(srv.URL)
}

func TestNew_RejectsMissingCredentials(t *testing.T) {
	log := zap.NewNop().Sugar()
	_, err := New("", "appTEST", log)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = New("your_airtable_api_key", "appTEST", log)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestListProducts_TranslatesFieldsAndPaginates(t *testing.T) {
	page := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer keyTEST", r.Header.Get("Authorization"))
		assert.Equal(t, "/appTEST/Products", r.URL.Path)

		page++
		if page == 1 {
			assert.Empty(t, r.URL.Query().Get("offset"))
			fmt.Fprint(w, `{
				"records": [{
					"id": "rec001",
					"fields": {
						"Name": "Fudge Brownie",
						"Description": "Classic",
						"Price": 20,
						"Category": ["recCat1", "recCat2"],
						"Stock": 8,
						"Image URL": "https://img.example/brownie.jpg",
						"Is Active": true,
						"Variations": "[{\"name\":\"Double Stack\",\"price\":35,\"stock\":3}]"
					}
				}],
				"offset": "itrNEXT"
			}`)
			return
		}
		assert.Equal(t, "itrNEXT", r.URL.Query().Get("offset"))
		fmt.Fprint(w, `{"records": [{"id": "rec002", "fields": {"Name": "Gummies", "Price": 25}}]}`)
	}))

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "rec001", p.ID)
	assert.Equal(t, "Fudge Brownie", p.Name)
	assert.Equal(t, 20.0, p.Price)
	assert.Equal(t, []string{"recCat1", "recCat2"}, p.CategoryIDs)
	assert.Equal(t, 8, p.Stock)
	assert.True(t, p.IsActive)
	assert.Equal(t, "active", p.Status)
	require.Len(t, p.Variations, 1)
	assert.Equal(t, models.Variation{Name: "Double Stack", Price: 35, Stock: 3}, p.Variations[0])

	// Inactive record with no explicit flag reads as inactive.
	assert.False(t, products[1].IsActive)
	assert.Equal(t, "inactive", products[1].Status)
}

func TestCreateProduct_SendsTranslatedFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sour Gummies", body.Fields["Name"])
		assert.Equal(t, 25.0, body.Fields["Price"])
		assert.Equal(t, "active", body.Fields["Status"])
		assert.JSONEq(t, `[{"name":"Extra Sour","price":28,"stock":4}]`, body.Fields["Variations"].(string))

		fmt.Fprint(w, `{"id": "recNEW", "fields": {"Name": "Sour Gummies", "Price": 25, "Is Active": true}}`)
	}))

	created, err := c.CreateProduct(context.Background(), models.Product{
		Name:       "Sour Gummies",
		Price:      25,
		IsActive:   true,
		Variations: []models.Variation{{Name: "Extra Sour", Price: 28, Stock: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, "recNEW", created.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetProduct(context.Background(), "recMISSING")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDo_WrapsUpstreamError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"error": {"type": "INVALID_REQUEST", "message": "Unknown field name"}}`)
	}))

	_, err := c.CreateCategory(context.Background(), models.Category{Name: "Edibles"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown field name")
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestCategoryTranslation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3.0, body.Fields["Display Order"])

		fmt.Fprint(w, `{"id": "recCatNEW", "fields": {"Name": "Flower", "Display Order": 3, "Is Active": true}}`)
	}))

	created, err := c.CreateCategory(context.Background(), models.Category{Name: "Flower", DisplayOrder: 3, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "recCatNEW", created.ID)
	assert.Equal(t, 3, created.DisplayOrder)
	assert.True(t, created.IsActive)
}

func TestCreateOrder_SerializesItems(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appTEST/Orders", r.URL.Path)
		var body struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "987654321", body.Fields["Order ID"])
		assert.Equal(t, "Brooklyn", body.Fields["Borough"])
		assert.JSONEq(t, `[{"name":"Brownie","quantity":2,"price":20}]`, body.Fields["Items"].(string))

		fmt.Fprint(w, `{"id": "recOrd1", "fields": {}}`)
	}))

	order := models.Order{
		OrderRef:       "987654321",
		DeliveryMethod: models.MethodDelivery,
		Borough:        "Brooklyn",
		Items:          []models.OrderItem{{Name: "Brownie", Quantity: 2, Price: 20}},
	}
	require.NoError(t, c.CreateOrder(context.Background(), &order))
}
