package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"woosync/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.StoreConfig{
		URL:            server.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		WPUsername:     "admin",
		WPAppPassword:  "app-pass",
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, zap.NewNop())
}

func Test_GetProductBySKU(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "ck_test", user)

		if r.URL.Query().Get("sku") == "WPJF001" {
			_ = json.NewEncoder(w).Encode([]Product{{ID: 42, SKU: "WPJF001", Name: "Jean"}})
			return
		}
		_ = json.NewEncoder(w).Encode([]Product{})
	}))

	p, err := client.GetProductBySKU(context.Background(), "WPJF001")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, 42, p.ID)

	// A missing product is nil, nil - not an error.
	p, err = client.GetProductBySKU(context.Background(), "WPXX999")
	require.NoError(t, err)
	require.Nil(t, p)
}

func Test_ListAllProducts_Paginates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			items := make([]Product, perPage)
			for i := range items {
				items[i] = Product{ID: i + 1}
			}
			_ = json.NewEncoder(w).Encode(items)
		case "2":
			_ = json.NewEncoder(w).Encode([]Product{{ID: perPage + 1}})
		default:
			t.Fatalf("unexpected page %q", page)
		}
	}))

	products, err := client.ListAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, perPage+1)
}

func Test_APIErrorCarriesStoreMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"product_invalid_sku","message":"Invalid or duplicated SKU."}`)
	}))

	_, err := client.CreateProduct(context.Background(), &Product{Name: "x"})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Invalid or duplicated SKU.", apiErr.Message)
}

func Test_UploadImage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/media", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Disposition"), "front.jpg")
		require.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))

		// Media uploads must use the WP application password.
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "admin", user)
		require.Equal(t, "app-pass", pass)

		_ = json.NewEncoder(w).Encode(Media{ID: 77})
	}))

	path := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	media, err := client.UploadImage(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 77, media.ID)
}

func Test_UploadImage_UnauthorizedIsAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Sorry, you are not allowed to do that."}`)
	}))

	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	_, err := client.UploadImage(context.Background(), path)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
