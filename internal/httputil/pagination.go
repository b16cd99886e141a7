package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageLimit is used when the limit query parameter is absent.
const DefaultPageLimit = 20

// ParsePagination parses the offset and limit query parameters.
// Offset defaults to 0; limit defaults to min(DefaultPageLimit, maxLimit) and must be
// in [1, maxLimit].
func ParsePagination(c *gin.Context, maxLimit int) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limitStr := c.Query("limit")
	if limitStr == "" {
		return offset, min(DefaultPageLimit, maxLimit), nil
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxLimit)
	}

	return offset, limit, nil
}
