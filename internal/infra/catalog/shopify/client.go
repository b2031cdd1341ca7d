// Package shopify implements the catalog boundary against the Shopify
// Storefront GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"maison/config"
	"maison/internal/domain/entity"
	"maison/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultTimeout   = 10 * time.Second
	placeholderImage = "/images/placeholder.jpg"
	defaultCategory  = "blends"
	defaultGender    = "Unisex"
	featuredTag      = "featured"

	tokenHeader = "X-Shopify-Storefront-Access-Token"
)

// client implements the CatalogService interface.
type client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientParams holds dependencies for the Shopify client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewCatalogService is the constructor for the Shopify-backed catalog.
func NewCatalogService(params ClientParams) (service.CatalogService, error) {
	cfg := params.Config.Commerce
	if cfg == nil || cfg.Domain == "" {
		return nil, errors.New("commerce domain is required")
	}
	if cfg.StorefrontToken == "" {
		return nil, errors.New("storefront token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	endpoint := fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, cfg.APIVersion)

	return NewClient(endpoint, cfg.StorefrontToken, timeout, params.Logger), nil
}

// NewClient builds a catalog client against an explicit endpoint.
func NewClient(endpoint, token string, timeout time.Duration, logger *slog.Logger) service.CatalogService {
	return &client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

const productFields = `
	id
	title
	description
	productType
	vendor
	tags
	availableForSale
	images(first: 10) { nodes { url } }
	variants(first: 20) {
		nodes {
			id
			title
			availableForSale
			price { amount }
		}
	}`

var productsQuery = fmt.Sprintf(`query { products(first: 100) { nodes { %s } } }`, productFields)

var productQuery = fmt.Sprintf(`query ($id: ID!) { node(id: $id) { ... on Product { %s } } }`, productFields)

const cartCreateMutation = `mutation ($lines: [CartLineInput!]!) {
	cartCreate(input: { lines: $lines }) {
		cart { checkoutUrl }
		userErrors { field message }
	}
}`

// FetchAllProducts retrieves the full normalized catalog.
func (c *client) FetchAllProducts(ctx context.Context) ([]entity.Product, error) {
	var payload struct {
		Products struct {
			Nodes []productNode `json:"nodes"`
		} `json:"products"`
	}

	if err := c.execute(ctx, productsQuery, nil, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to fetch products")
	}

	products := make([]entity.Product, 0, len(payload.Products.Nodes))
	for _, node := range payload.Products.Nodes {
		products = append(products, node.toEntity())
	}

	return products, nil
}

// FetchProduct retrieves one product by its numeric ID, nil when absent.
func (c *client) FetchProduct(ctx context.Context, id string) (*entity.Product, error) {
	var payload struct {
		Node *productNode `json:"node"`
	}

	variables := map[string]any{
		"id": "gid://shopify/Product/" + id,
	}
	if err := c.execute(ctx, productQuery, variables, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to fetch product")
	}
	if payload.Node == nil || payload.Node.ID == "" {
		return nil, nil
	}

	product := payload.Node.toEntity()

	return &product, nil
}

// CreateCheckoutSession creates a platform cart from the given lines and
// returns its checkout URL.
func (c *client) CreateCheckoutSession(ctx context.Context, lines []service.CheckoutLineItem) (string, error) {
	type cartLine struct {
		MerchandiseID string `json:"merchandiseId"`
		Quantity      int    `json:"quantity"`
	}

	cartLines := make([]cartLine, 0, len(lines))
	for _, line := range lines {
		cartLines = append(cartLines, cartLine{
			MerchandiseID: line.VariantID,
			Quantity:      line.Quantity,
		})
	}

	var payload struct {
		CartCreate struct {
			Cart *struct {
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"cartCreate"`
	}

	variables := map[string]any{"lines": cartLines}
	if err := c.execute(ctx, cartCreateMutation, variables, &payload); err != nil {
		return "", errors.Wrap(err, "failed to create checkout session")
	}

	if len(payload.CartCreate.UserErrors) > 0 {
		return "", errors.Errorf("checkout session rejected: %s", payload.CartCreate.UserErrors[0].Message)
	}
	if payload.CartCreate.Cart == nil || payload.CartCreate.Cart.CheckoutURL == "" {
		return "", errors.New("checkout session returned no URL")
	}

	return payload.CartCreate.Cart.CheckoutURL, nil
}

// execute runs one GraphQL request and decodes its data into out.
func (c *client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "storefront request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Storefront API returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)))

		return errors.Errorf("storefront returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(err, "failed to decode storefront response")
	}
	if len(envelope.Errors) > 0 {
		return errors.Errorf("storefront error: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrap(err, "failed to decode storefront data")
	}

	return nil
}

// productNode is the raw Storefront API product shape.
type productNode struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ProductType      string   `json:"productType"`
	Vendor           string   `json:"vendor"`
	Tags             []string `json:"tags"`
	AvailableForSale bool     `json:"availableForSale"`
	Images           struct {
		Nodes []struct {
			URL string `json:"url"`
		} `json:"nodes"`
	} `json:"images"`
	Variants struct {
		Nodes []variantNode `json:"nodes"`
	} `json:"variants"`
}

type variantNode struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Price            struct {
		Amount string `json:"amount"`
	} `json:"price"`
}

// toEntity normalizes the platform shape: numeric IDs extracted from global
// IDs, vendor repurposed as gender, defaults filled for missing fields.
func (n productNode) toEntity() entity.Product {
	variants := make([]entity.ProductVariant, 0, len(n.Variants.Nodes))
	for _, v := range n.Variants.Nodes {
		variants = append(variants, entity.ProductVariant{
			ID:         numericID(v.ID),
			PlatformID: v.ID,
			Size:       v.Title,
			Price:      parseAmount(v.Price.Amount),
			Available:  v.AvailableForSale,
		})
	}

	images := make([]string, 0, len(n.Images.Nodes))
	for _, img := range n.Images.Nodes {
		images = append(images, img.URL)
	}

	product := entity.Product{
		ID:          numericID(n.ID),
		PlatformID:  n.ID,
		Name:        n.Title,
		Description: n.Description,
		Category:    n.ProductType,
		Gender:      n.Vendor,
		Image:       placeholderImage,
		Images:      images,
		Variants:    variants,
		InStock:     n.AvailableForSale,
	}

	if len(variants) > 0 {
		product.Price = variants[0].Price
	}
	if len(images) > 0 {
		product.Image = images[0]
	}
	if product.Category == "" {
		product.Category = defaultCategory
	}
	if product.Gender == "" {
		product.Gender = defaultGender
	}
	for _, tag := range n.Tags {
		if tag == featuredTag {
			product.Featured = true

			break
		}
	}

	return product
}

// numericID extracts the trailing segment of a platform global ID,
// e.g. "gid://shopify/Product/123" yields "123".
func numericID(gid string) string {
	if idx := strings.LastIndex(gid, "/"); idx >= 0 {
		return gid[idx+1:]
	}

	return gid
}

func parseAmount(amount string) decimal.Decimal {
	price, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}

	return price
}
