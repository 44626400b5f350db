package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptNumber builds RCP-{YYYYMMDD}-{8 uppercase hex chars} from the UTC
// date of now. The suffix is the head of a random UUID.
func NewReceiptNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "RCP-" + now.UTC().Format("20060102") + "-" + suffix
}
