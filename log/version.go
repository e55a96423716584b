package log

import (
	"github.com/oqtopus-team/readout-mitigator/core"
	"go.uber.org/zap"
)

const VersionLogTaskName = "version_log"

type VersionLogTaskImpl struct {
	core.DefaultTaskImpl
}

func (v *VersionLogTaskImpl) Task() {
	zap.L().Debug("Mitigator version:" + core.Version)
}
