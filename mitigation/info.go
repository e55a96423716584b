package mitigation

import (
	"encoding/json"
	"fmt"

	"github.com/oqtopus-team/readout-mitigator/core"
	"go.uber.org/zap"
)

type PropertyRaw json.RawMessage

// MitigationInfo is parsed from the job's MitigationInfo JSON, e.g.
// {"readout": "pseudo_inverse"}. Anything unparsable means no mitigation.
type MitigationInfo struct {
	NeedToBeMitigated bool
	Mitigated         bool
	Readout           string

	PropertyRaw PropertyRaw
}

func NewMitigationInfoFromJobData(jd *core.JobData) *MitigationInfo {
	m := MitigationInfo{
		Mitigated: false,
	}
	m.NeedToBeMitigated = false
	inputBytes := []byte(jd.MitigationInfo)

	if len(inputBytes) > 0 && json.Valid(inputBytes) {
		m.PropertyRaw = PropertyRaw(inputBytes)
		var props map[string]string
		if err := json.Unmarshal(m.PropertyRaw, &props); err != nil {
			zap.L().Warn(fmt.Sprintf("failed to unmarshal PropertyRaw into map for JobID:%s, assuming not mitigated: %s", jd.ID, err))
		} else {
			readoutValue, ok := props["readout"]
			m.Readout = readoutValue
			if ok && readoutValue == PSEUDO_INVERSE_MITIGATION {
				zap.L().Debug(fmt.Sprintf("JobID:%s Need to be mitigated based on PropertyRaw.readout", jd.ID))
				m.NeedToBeMitigated = true
			} else {
				zap.L().Debug(fmt.Sprintf("JobID:%s does not need to be mitigated based on PropertyRaw.readout (value: %s, found: %t)", jd.ID, readoutValue, ok))
			}
		}
	} else if len(inputBytes) == 0 {
		zap.L().Debug(fmt.Sprintf("JobID:%s MitigationInfo string is empty, assuming not mitigated", jd.ID))
	} else {
		zap.L().Warn(fmt.Sprintf("JobID:%s MitigationInfo string is not valid JSON, assuming not mitigated: %s", jd.ID, jd.MitigationInfo))
	}
	zap.L().Debug(fmt.Sprintf("set MitigationInfo PropertyRaw: %s, NeedToBeMitigated: %t", string(m.PropertyRaw), m.NeedToBeMitigated))
	return &m
}
