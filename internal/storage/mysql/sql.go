package mysql

const upsertSellerSQL = `
INSERT INTO sellers
  (id, name, location, rating, positive_percent, rating_count, description, verified, trust_score, profile)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name             = VALUES(name),
  location         = VALUES(location),
  rating           = VALUES(rating),
  positive_percent = VALUES(positive_percent),
  rating_count     = VALUES(rating_count),
  description      = VALUES(description),
  verified         = VALUES(verified),
  trust_score      = VALUES(trust_score),
  profile          = VALUES(profile)
`

const upsertProductSQL = `
INSERT INTO products (id, seller_id, name)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  seller_id = COALESCE(VALUES(seller_id), products.seller_id),
  name      = VALUES(name)
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (id, product_id, reviewer, rating, title, content, review_date, verified, helpful, classification, flags)\nVALUES "

const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  product_id     = VALUES(product_id),\n" +
	"  reviewer       = VALUES(reviewer),\n" +
	"  rating         = VALUES(rating),\n" +
	"  title          = VALUES(title),\n" +
	"  content        = VALUES(content),\n" +
	"  review_date    = COALESCE(VALUES(review_date), reviews.review_date),\n" +
	"  verified       = VALUES(verified),\n" +
	"  helpful        = VALUES(helpful),\n" +
	"  classification = VALUES(classification),\n" +
	"  flags          = VALUES(flags)\n"

const insertMissSQL = `
INSERT INTO ingest_misses (kind, id, http_status, reason)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getSellerSQL = `
SELECT id, name, location, rating, positive_percent, rating_count, description, verified, trust_score, profile
FROM sellers
WHERE id = ?
`

const getProductSQL = `
SELECT id, seller_id, name
FROM products
WHERE id = ?
`

// review_date is formatted in SQL so scanning never depends on parseTime.
const listReviewsSQL = `
SELECT id, product_id, reviewer, rating, title, content,
       DATE_FORMAT(review_date, '%Y-%m-%d'),
       verified, helpful, classification, flags
FROM reviews
WHERE product_id = ?
ORDER BY id
`
