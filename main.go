package main

import "github.com/elastic-io/parcel/cmd"

// version must be set from the contents of VERSION file by go build's
// -X main.version= option in the Makefile.
var version = "unknown"

// gitCommit will be the hash that the binary was built from
// and will be populated by the Makefile
var gitCommit = ""

const (
	usage = `multipart upload coordinator

To serve uploads into an S3 bucket with a local session store:
    # parcel run -e 0.0.0.0:3000 --bucket uploads --region us-east-1

To use a MinIO endpoint and a redis session store:
    # parcel --backend redis run --dsn redis://127.0.0.1:6379/0 \
        --object-backend minio --object-endpoint http://127.0.0.1:9000 --bucket uploads

To list unfinished sessions:
    # parcel sessions --status in_progress
`
)

func main() {
	cmd.Execute("parcel", usage, version, gitCommit)
}
