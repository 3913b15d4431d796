package get

import (
	"fmt"
	"strings"

	"github.com/objectledger-lab/objectledger/command/helper"
)

type GetResult struct {
	ID      string `json:"id"`
	Version uint64 `json:"version"`
	Digest  string `json:"digest"`
	Status  string `json:"status"`
	Owner   string `json:"owner,omitempty"`
	Type    string `json:"type,omitempty"`
}

func (r *GetResult) GetOutput() string {
	var s strings.Builder

	s.WriteString("[OBJECT]\n")

	rows := []string{
		fmt.Sprintf("ID|%s", r.ID),
		fmt.Sprintf("Version|%d", r.Version),
		fmt.Sprintf("Digest|%s", r.Digest),
		fmt.Sprintf("Status|%s", r.Status),
	}

	if r.Owner != "" {
		rows = append(rows, fmt.Sprintf("Owner|%s", r.Owner))
	}

	if r.Type != "" {
		rows = append(rows, fmt.Sprintf("Type|%s", r.Type))
	}

	s.WriteString(helper.FormatKV(rows))

	return s.String()
}
