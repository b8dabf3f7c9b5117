package mysql

// Table names cannot be bound as parameters; every statement below is
// formatted with a validated, backtick-quoted identifier.

const createTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
  id          VARCHAR(255)  NOT NULL,
  name        VARCHAR(512)  NOT NULL DEFAULT '',
  destination VARCHAR(255)  NOT NULL DEFAULT '',
  price       DOUBLE        NOT NULL DEFAULT 0,
  rating      DOUBLE        NOT NULL DEFAULT 0,
  reviews     INT           NOT NULL DEFAULT 0,
  doc         JSON          NOT NULL,
  updated_at  TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_destination (destination)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const upsertHotelSQL = `
INSERT INTO %s
  (id, name, destination, price, rating, reviews, doc)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  destination = VALUES(destination),
  price       = VALUES(price),
  rating      = VALUES(rating),
  reviews     = VALUES(reviews),
  doc         = VALUES(doc),
  updated_at  = CURRENT_TIMESTAMP
`

const getHotelSQL = `SELECT doc FROM %s WHERE id = ?`

// one extra row tells whether another page exists
const scanHotelsSQL = `
SELECT id, doc
FROM %s
WHERE id > ?
ORDER BY id
LIMIT ?
`
