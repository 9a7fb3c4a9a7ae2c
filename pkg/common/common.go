package common

import (
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a time-ordered unique id for new records.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SafeFileName strips characters that are unsafe in a download file
// name derived from a serial.
func SafeFileName(name string) string {
	repl := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
	)
	return repl.Replace(name)
}
