package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProductsByIDs(t *testing.T) {
	t.Run("Success - batched query returns decoded products", func(t *testing.T) {
		var gotQuery string
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("query")
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":[
				{"_id":"saree-1","title":"Kanchipuram Silk Saree","price":4500,"availability":"in_stock","imageUrl":"https://cdn.example/saree-1.jpg"},
				{"_id":"bridal-3","title":"Bridal Lehenga","price":null,"availability":"made_to_order"}
			]}`))
		}))
		defer server.Close()

		client := NewClient("proj", "production", "secret-token")
		client.BaseURL = server.URL

		products, err := client.GetProductsByIDs(context.Background(), []string{"saree-1", "bridal-3"})

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Contains(t, gotQuery, `"saree-1"`)
		assert.Contains(t, gotQuery, `"bridal-3"`)
		assert.Equal(t, "Bearer secret-token", gotAuth)

		assert.Equal(t, "saree-1", products[0].ID)
		assert.NotNil(t, products[0].Price)
		assert.Equal(t, 4500, *products[0].Price)
		assert.Nil(t, products[1].Price)
		assert.Equal(t, AvailabilityMadeToOrder, products[1].Availability)
	})

	t.Run("Success - empty id list short-circuits without a request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request for empty id list")
		}))
		defer server.Close()

		client := NewClient("proj", "production", "")
		client.BaseURL = server.URL

		products, err := client.GetProductsByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Failure - non-200 from the content store is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "query parse error", http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient("proj", "production", "")
		client.BaseURL = server.URL

		products, err := client.GetProductsByIDs(context.Background(), []string{"saree-1"})

		assert.Error(t, err)
		assert.Nil(t, products)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("Success - null result decodes to empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":null}`))
		}))
		defer server.Close()

		client := NewClient("proj", "production", "")
		client.BaseURL = server.URL

		products, err := client.GetProductsByIDs(context.Background(), []string{"ghost-9"})

		assert.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Success - limit is clamped into the query", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("query")
			w.Write([]byte(`{"result":[]}`))
		}))
		defer server.Close()

		client := NewClient("proj", "production", "")
		client.BaseURL = server.URL

		_, err := client.ListProducts(context.Background(), 5000)

		assert.NoError(t, err)
		assert.Contains(t, gotQuery, "[0...50]")
	})
}
