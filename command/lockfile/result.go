package lockfile

import (
	"fmt"
	"strings"

	"github.com/objectledger-lab/objectledger/command/helper"
)

type LockfileResult struct {
	Package  string `json:"package"`
	LockPath string `json:"lockPath"`
	Packages int    `json:"packages"`
}

func (r *LockfileResult) GetOutput() string {
	var s strings.Builder

	s.WriteString("[LOCK FILE GENERATED]\n")
	s.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Package|%s", r.Package),
		fmt.Sprintf("Lock Path|%s", r.LockPath),
		fmt.Sprintf("Pinned Packages|%d", r.Packages),
	}))

	return s.String()
}
