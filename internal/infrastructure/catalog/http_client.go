package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

const defaultCatalogTimeout = 15 * time.Second

type httpProductRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProductRepository do'kon backend katalogiga HTTP orqali
// ulanadigan repository. Olti toifa so'rovi bitta hostga parallel
// ketadi, shuning uchun transportda idle ulanishlar ushlab turiladi.
func NewHTTPProductRepository(baseURL, apiKey string, timeout time.Duration) repository.ProductRepository {
	if timeout <= 0 {
		timeout = defaultCatalogTimeout
	}
	return &httpProductRepository{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status=%d: %s", e.code, e.msg)
}

// flexPrice backend narxni ba'zan satr ko'rinishida beradi
// ("125000.00", "125 000,00"). Ikkala shaklni ham qabul qilamiz.
type flexPrice float64

func (f *flexPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*f = flexPrice(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexPrice(v)
	return nil
}

type productPayload struct {
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Price       flexPrice `json:"price"`
	CreditPrice flexPrice `json:"credit"`
	Stock       int       `json:"stock"`
	Description string    `json:"description"`
}

func (p productPayload) toEntity() entity.Product {
	cat, ok := entity.ParseCategory(p.Category)
	if !ok {
		cat = entity.Category(strings.ToLower(strings.TrimSpace(p.Category)))
	}
	return entity.Product{
		SKU:         strings.TrimSpace(p.SKU),
		Name:        strings.TrimSpace(p.Name),
		Category:    cat,
		Brand:       strings.TrimSpace(p.Brand),
		Price:       float64(p.Price),
		CreditPrice: float64(p.CreditPrice),
		Stock:       p.Stock,
		Description: p.Description,
	}
}

type productsResponse struct {
	Products []productPayload `json:"products"`
	Total    int              `json:"total"`
}

func (h *httpProductRepository) doJSON(ctx context.Context, method, urlStr string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.apiKey != "" {
		req.Header.Set("X-API-Key", h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &statusError{code: resp.StatusCode, msg: msg}
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(resp.Body, 25<<20))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("json decode error: %w", err)
	}
	return nil
}

// Search matn bo'yicha qidirish
func (h *httpProductRepository) Search(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp productsResponse
	u := h.baseURL + "/api/products?" + params.Encode()
	if err := h.doJSON(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	results := make([]entity.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		results = append(results, p.toEntity())
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchByCategory toifa va narx oralig'i bo'yicha kandidatlar.
// Backend tartibiga tayanmaymiz: bu yerda ham omborda borlari
// oldinga, keyin narx va SKU bo'yicha saralanadi.
func (h *httpProductRepository) SearchByCategory(ctx context.Context, cat entity.Category, minPrice, maxPrice float64, limit int) ([]entity.Product, error) {
	params := url.Values{}
	params.Set("category", string(cat))
	if minPrice > 0 {
		params.Set("min_price", strconv.FormatFloat(minPrice, 'f', -1, 64))
	}
	if maxPrice > 0 {
		params.Set("max_price", strconv.FormatFloat(maxPrice, 'f', -1, 64))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp productsResponse
	u := h.baseURL + "/api/products?" + params.Encode()
	if err := h.doJSON(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("catalog category %s: %w", cat, err)
	}

	results := make([]entity.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		prod := p.toEntity()
		price := prod.EffectivePrice()
		if price < minPrice {
			continue
		}
		if maxPrice > 0 && price > maxPrice {
			continue
		}
		results = append(results, prod)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].InStock() != results[j].InStock() {
			return results[i].InStock()
		}
		pi, pj := results[i].EffectivePrice(), results[j].EffectivePrice()
		if pi != pj {
			return pi < pj
		}
		return results[i].SKU < results[j].SKU
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetBySKU bitta tovar. 404 ErrProductNotFound ga aylanadi, qolgan
// xatolar transport muammosi sifatida qaytadi.
func (h *httpProductRepository) GetBySKU(ctx context.Context, sku string) (entity.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return entity.Product{}, repository.ErrProductNotFound
	}

	var payload productPayload
	u := h.baseURL + "/api/products/" + url.PathEscape(sku)
	if err := h.doJSON(ctx, http.MethodGet, u, nil, &payload); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return entity.Product{}, repository.ErrProductNotFound
		}
		return entity.Product{}, fmt.Errorf("catalog sku %s: %w", sku, err)
	}
	return payload.toEntity(), nil
}

// UpdateCatalog katalogni backendga to'liq yuklash
func (h *httpProductRepository) UpdateCatalog(ctx context.Context, products []entity.Product) error {
	body := struct {
		Products []entity.Product `json:"products"`
	}{Products: products}

	u := h.baseURL + "/api/products/import"
	if err := h.doJSON(ctx, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("catalog import: %w", err)
	}
	return nil
}
