package main

import "github.com/elastic-io/parcel/cmd/pcl/cmd"

var version = "unknown"

var gitCommit = ""

const (
	usage = `
    # pcl --endpoint http://127.0.0.1:3000 upload --user alice ./movie.mp4
`
)

func main() {
	cmd.Execute("pcl", usage, version, gitCommit)
}
