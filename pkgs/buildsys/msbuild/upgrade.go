package msbuild

import (
	"context"
	"fmt"
)

// UpgradeSkippedNotice is written when the project upgrade is suppressed by
// configuration.
const UpgradeSkippedNotice = "Skipped sln project upgrade"

func (m *MSBuild) upgradeCommand(project string) *Invocation {
	return &Invocation{
		Path: m.devenv,
		Args: []string{project, "/upgrade"},
		Dir:  m.SourceDir,
	}
}

// upgrade runs "devenv <project> /upgrade" unless the skip accessor reports
// true. It returns the invocation that ran, or nil if it was skipped.
func (m *MSBuild) upgrade(ctx context.Context, project string) (*Invocation, error) {
	if m.skipUpgrade != nil && m.skipUpgrade() {
		m.logger.Info(UpgradeSkippedNotice, "project", project)
		fmt.Fprintln(m.output(), UpgradeSkippedNotice)
		return nil, nil
	}
	inv := m.upgradeCommand(project)
	m.logger.Info("upgrading project", "command", inv.String())
	if err := run(ctx, inv, m.output(), m.env); err != nil {
		return nil, err
	}
	return inv, nil
}
