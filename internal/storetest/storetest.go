// Package storetest builds storefront fixtures on disk for tests.
package storetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"creator-store-check/internal/config"
)

const (
	StoreHTML = `<html><body>
<h1>ISBN-Free books, no gatekeepers</h1>
<p>Creator sovereignty: 100% of revenue goes to the creator.</p>
<p>An anti-platform store.</p>
</body></html>`

	PaymentJS = `const stripe = require('stripe')(process.env.STRIPE_SECRET_KEY);
class SovereignPaymentSystem {
  constructor() { this.bookCatalog = {}; }
  async handlePaymentSuccess(session) {
    const downloadToken = this.generateSecureToken();
    const jimmyRevenue = 1;
    await this.sendDownloadEmail(session.customer_details.email);
  }
}`

	DomainJS = `const domainConfig = { primaryDomain: "thefortthatholds.xyz" };`

	CatalogJSON = `{
  "catalog": {
    "resonance_collective_trilogy": {"books": [
      {"id": "resonance-1", "price_usd": 14.99},
      {"id": "resonance-2", "price_usd": 14.99},
      {"id": "resonance-3", "price_usd": 14.99}
    ]},
    "fiction": [
      {"id": "gay-panic-001", "price_usd": 12.99},
      {"id": "space-opera-001", "price_usd": 13.99}
    ],
    "trauma_workbooks": [
      {"id": "workbook-001", "price_usd": 19.99},
      {"id": "workbook-002", "price_usd": 17.99},
      {"id": "workbook-003", "price_usd": 21.99},
      {"id": "workbook-004", "price_usd": 16.99},
      {"id": "workbook-005", "price_usd": 18.99},
      {"id": "workbook-006", "price_usd": 22.99},
      {"id": "workbook-007", "price_usd": 19.99},
      {"id": "workbook-008", "price_usd": 23.99},
      {"id": "workbook-009", "price_usd": 20.99}
    ]
  },
  "liberation_verified": true,
  "werner_health_enabled": true,
  "spirallogic_integrated": true
}`
)

func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Complete lays out a store that passes every check, with the catalog
// at its default sibling location.
func Complete(t testing.TB) *config.Config {
	t.Helper()
	root := t.TempDir()
	store := filepath.Join(root, "store")

	WriteFile(t, filepath.Join(store, "index.html"), StoreHTML)
	WriteFile(t, filepath.Join(store, "payment-system.js"), PaymentJS)
	WriteFile(t, filepath.Join(store, "domain-config.js"), DomainJS)
	WriteFile(t, filepath.Join(store, "deploy-to-domain.md"), "# Deploy\n")
	WriteFile(t, filepath.Join(root, "CreatorMarketLiberation", "market-directory", "jimmy-catalog.json"), CatalogJSON)

	cfg := config.DefaultConfig()
	cfg.StoreDir = store
	return cfg
}
