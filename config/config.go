package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"maison/internal/domain/entity"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Commerce configures the external commerce platform the catalog and
	// checkout are delegated to.
	Commerce *CommerceConfig `json:"commerce" yaml:"commerce"`

	// Firebase configures the external identity provider.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	// Store configures the local state store backing per-identity
	// storefront state (cart, wishlist, preferences, addresses, orders).
	Store *StoreConfig `json:"store" yaml:"store"`

	// PubSub configures checkout event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configures checkout handoff QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Shipping is the configured set of shipping tiers. The first entry is
	// the default selection for a fresh cart.
	Shipping []ShippingOptionConfig `json:"shipping" yaml:"shipping"`

	// Promos is the configured promo code table.
	Promos []PromoCodeConfig `json:"promos" yaml:"promos"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CommerceConfig defines the commerce platform connection
type CommerceConfig struct {
	Domain          string        `json:"domain" yaml:"domain"`                   // Shop domain, e.g. "maison.myshopify.com"
	StorefrontToken string        `json:"storefrontToken" yaml:"storefrontToken"` // Storefront API access token
	APIVersion      string        `json:"apiVersion" yaml:"apiVersion"`           // Storefront API version, e.g. "2025-07"
	Timeout         time.Duration `json:"timeout" yaml:"timeout"`
}

// FirebaseConfig defines the identity provider connection
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	// WebAPIKey is required for the password sign-in REST endpoint; the
	// Admin SDK has no password grant.
	WebAPIKey string `json:"webApiKey" yaml:"webApiKey"`
}

type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

// StoreConfig defines the local state store backend
type StoreConfig struct {
	// Provider type: "memory", "file" or "postgres"
	Provider string `json:"provider" yaml:"provider"`

	// Path is the directory backing the file provider
	Path string `json:"path" yaml:"path"`

	// Postgres connection for the postgres provider
	Postgres *pgLib.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
}

// PubSubConfig defines Pub/Sub configuration for checkout event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// ShippingOptionConfig is one shipping tier as written in YAML.
type ShippingOptionConfig struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	Price         float64 `json:"price" yaml:"price"`
	FreeThreshold float64 `json:"freeThreshold" yaml:"freeThreshold"` // 0 means no free threshold
	Note          string  `json:"note" yaml:"note"`
}

// PromoCodeConfig is one promo table entry as written in YAML.
type PromoCodeConfig struct {
	Code        string  `json:"code" yaml:"code"`
	Description string  `json:"description" yaml:"description"`
	Type        string  `json:"type" yaml:"type"`
	Value       float64 `json:"value" yaml:"value"`
	MinPurchase float64 `json:"minPurchase" yaml:"minPurchase"` // 0 means no minimum
	Active      bool    `json:"active" yaml:"active"`
}

// ShippingOptions converts the configured tiers to domain entities,
// preserving order so index 0 stays the default selection.
func (c *Config) ShippingOptions() []entity.ShippingOption {
	options := make([]entity.ShippingOption, 0, len(c.Shipping))
	for _, sc := range c.Shipping {
		option := entity.ShippingOption{
			ID:          sc.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Price:       decimal.NewFromFloat(sc.Price),
			Note:        sc.Note,
		}
		if sc.FreeThreshold > 0 {
			threshold := decimal.NewFromFloat(sc.FreeThreshold)
			option.FreeThreshold = &threshold
		}
		options = append(options, option)
	}

	return options
}

// PromoCodes converts the configured promo table to domain entities.
func (c *Config) PromoCodes() []entity.PromoCode {
	promos := make([]entity.PromoCode, 0, len(c.Promos))
	for _, pc := range c.Promos {
		promo := entity.PromoCode{
			Code:        pc.Code,
			Description: pc.Description,
			Type:        entity.PromoType(pc.Type),
			Value:       decimal.NewFromFloat(pc.Value),
			Active:      pc.Active,
		}
		if pc.MinPurchase > 0 {
			minPurchase := decimal.NewFromFloat(pc.MinPurchase)
			promo.MinPurchase = &minPurchase
		}
		promos = append(promos, promo)
	}

	return promos
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: COMMERCE_STOREFRONTTOKEN -> commerce.storefrontToken
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	return LoadWithEnv[Config]("config", "config", "../config", "../../config")
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
