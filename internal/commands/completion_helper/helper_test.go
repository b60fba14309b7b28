package completion_helper

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
)

func TestDefaultFlagComplete(t *testing.T) {
	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "evaluate",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "duplicates", Aliases: []string{"d"}},
			&cli.BoolFlag{Name: "json"},
		},
	}

	DefaultFlagComplete(context.Background(), cmd)

	assert.Equal(t, "--duplicates\n-d\n--json\n", out.String())
}
