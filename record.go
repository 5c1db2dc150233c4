package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ieee0824/transcript-text/textutil"
)

// fieldDelims separates values inside a record column.
const fieldDelims = " ,"

// ParseRecord parses one decoder output record of the form
//
//	id id id ...<TAB>t t t ...
//
// The timestamp column is optional. Values inside a column are separated by
// spaces or commas.
func ParseRecord(line string) (ids []int32, timestamps []float32, err error) {
	idCol, tsCol, _ := strings.Cut(strings.TrimRight(line, "\r\n"), "\t")

	fields := textutil.SplitString(idCol, fieldDelims, true)
	ids = make([]int32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, nil, fmt.Errorf("token id %d: %w", i, err)
		}
		ids[i] = int32(v)
	}

	if strings.TrimSpace(tsCol) == "" {
		return ids, nil, nil
	}
	timestamps, err = textutil.ParseReals[float32](tsCol, fieldDelims, true)
	if err != nil {
		return nil, nil, fmt.Errorf("timestamps: %w", err)
	}
	if len(timestamps) == 0 {
		return ids, nil, nil
	}
	return ids, timestamps, nil
}
