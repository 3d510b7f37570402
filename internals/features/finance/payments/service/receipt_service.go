package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const receiptPrefix = "RCP"

// GenerateReceiptNumber builds the human-readable receipt identifier:
// RCP-<millisecond epoch>-<3 digit random suffix>. Best-effort unique; the
// unique index on payments is the backstop and PayFee retries on
// collision.
func GenerateReceiptNumber() string {
	return fmt.Sprintf("%s-%d-%d", receiptPrefix, time.Now().UnixMilli(), rand.Intn(1000))
}

// LooksLikeReceiptNumber is used by the receipt lookup to reject obvious
// garbage before hitting the DB.
func LooksLikeReceiptNumber(s string) bool {
	return strings.HasPrefix(s, receiptPrefix+"-") && len(s) > len(receiptPrefix)+1
}
