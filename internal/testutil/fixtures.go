// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// ShopManifestYAML is a small manifest with two resource groups that share
// models: orders returns Order{id, items: List<Item>} and receipts returns
// Receipt{order: Order}.
const ShopManifestYAML = `types:
  - name: Order
    package: shop
    description: A customer order
    properties:
      - name: id
        type: int
        required: true
      - name: items
        type: List<Item>
  - name: Item
    package: shop
    properties:
      - name: sku
        type: string
        required: true
  - name: Receipt
    package: shop
    properties:
      - name: order
        type: Order
  - name: Page
    package: shop
    params: [T]
    properties:
      - name: content
        type: T[]
groups:
  - name: orders
    description: Order management
    operations:
      - id: getOrder
        method: get
        path: /orders/{id}
        returns: Order
      - id: listOrders
        method: get
        path: /orders
        returns: Page<Order>
        ignorable: [Page<Order>]
  - name: receipts
    operations:
      - id: getReceipt
        method: get
        path: /receipts/{id}
        returns: Receipt
      - id: createReceipt
        method: post
        path: /receipts
        returns: Receipt
        parameters:
          - name: body
            in: body
            type: Receipt
            required: true
`

// ShopManifest returns ShopManifestYAML decoded into a generic document, for
// tests that need to tweak it before writing it back.
func ShopManifest(t *testing.T) map[string]any {
	t.Helper()

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(ShopManifestYAML), &doc); err != nil {
		t.Fatalf("Failed to decode shop manifest: %v", err)
	}
	return doc
}

// WriteTempFile writes content to name inside a fresh temporary directory
// and returns the file path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to JSON and writes it to a temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteTempFile(t, "test.json", string(data))
}
