package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-". One trailing newline is dropped.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
