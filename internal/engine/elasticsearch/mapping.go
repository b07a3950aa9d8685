package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "ecommerce_products"

// buildIndexMapping returns the full JSON mapping for the products index.
// Text fields get a standard analyzer plus a keyword sub-field for exact
// filters and sorting; the name field additionally carries an edge_ngram
// autocomplete sub-field backing prefix suggestions.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "product_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        },
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":                { "type": "keyword" },
      "name":              { "type": "text", "analyzer": "product_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" } } },
      "slug":              { "type": "keyword" },
      "description":       { "type": "text", "analyzer": "product_analyzer" },
      "short_description": { "type": "text", "analyzer": "product_analyzer" },
      "sku":               { "type": "keyword" },
      "category_id":       { "type": "keyword" },
      "brand_id":          { "type": "keyword" },
      "brand_name":        { "type": "text", "analyzer": "product_analyzer", "fields": { "keyword": { "type": "keyword" } } },
      "base_price":        { "type": "long" },
      "discount_price":    { "type": "long" },
      "currency":          { "type": "keyword" },
      "is_active":         { "type": "boolean" },
      "is_featured":       { "type": "boolean" },
      "created_at":        { "type": "date" },
      "updated_at":        { "type": "date" }
    }
  }
}`
}
