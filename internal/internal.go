package internal

import (
	_ "github.com/elastic-io/parcel/internal/api/upload"
	_ "github.com/elastic-io/parcel/internal/storage/badger"
	_ "github.com/elastic-io/parcel/internal/storage/bolt"
	_ "github.com/elastic-io/parcel/internal/storage/mysql"
	_ "github.com/elastic-io/parcel/internal/storage/redis"
)
