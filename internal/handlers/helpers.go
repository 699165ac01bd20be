package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func currentUser(c *gin.Context) (userID int, role string) {
	if id, ok := getIntFromCtx(c, "user_id"); ok {
		userID = id
	}
	if v, ok := c.Get("role"); ok {
		role, _ = v.(string)
	}
	return
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	return size, (page - 1) * size
}
