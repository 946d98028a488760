package backendtest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/storefront/backend"
	"github.com/kbukum/storefront/logger"
)

func (s *Server) engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.record(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/food/list", s.listFoods)
	api.POST("/cart/add", s.mutate(1))
	api.POST("/cart/remove", s.mutate(-1))
	api.POST("/cart/get", s.getCart)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request", logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logger.FieldStatus, c.Writer.Status(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
}

// record stores the call and applies latency. The item id is filled in
// by the mutation handler once the body is bound.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Token:     c.GetHeader(backend.TokenHeader),
			RequestID: c.GetHeader("X-Request-ID"),
			UserAgent: c.GetHeader("User-Agent"),
		})
		c.Set("call_index", len(s.calls)-1)
		latency := s.faults.Latency
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-c.Request.Context().Done():
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
		}
		c.Next()
	}
}

func (s *Server) listFoods(c *gin.Context) {
	s.mu.RLock()
	faults := s.faults
	products := s.products
	s.mu.RUnlock()

	switch {
	case faults.ListStatus != 0:
		c.Status(faults.ListStatus)
	case faults.ListMalformed:
		c.Data(http.StatusOK, "application/json", []byte("<html>maintenance</html>"))
	case faults.ListUnsuccessful:
		c.JSON(http.StatusOK, backend.FoodList{Success: false, Message: MsgServiceError})
	default:
		c.JSON(http.StatusOK, backend.FoodList{Success: true, Data: products})
	}
}

// authorized reports whether token may use the cart. Callers hold s.mu.
func (s *Server) authorized(token string) bool {
	if token == "" {
		return false
	}
	return len(s.tokens) == 0 || s.tokens[token]
}

func (s *Server) mutate(delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req backend.ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, backend.Reply{Success: false, Message: MsgServiceError})
			return
		}
		token := c.GetHeader(backend.TokenHeader)

		s.mu.Lock()
		defer s.mu.Unlock()
		if i, ok := c.Get("call_index"); ok {
			s.calls[i.(int)].ItemID = req.ItemID
		}

		if s.faults.MutationStatus != 0 {
			c.Status(s.faults.MutationStatus)
			return
		}
		if !s.authorized(token) {
			c.JSON(http.StatusOK, backend.Reply{Success: false, Message: MsgNotAuthed})
			return
		}
		if s.faults.MutationUnsuccessful {
			c.JSON(http.StatusOK, backend.Reply{Success: false, Message: MsgServiceError})
			return
		}

		cart := s.carts[token]
		if cart == nil {
			cart = make(map[string]int)
			s.carts[token] = cart
		}
		if delta > 0 {
			cart[req.ItemID]++
			c.JSON(http.StatusOK, backend.Reply{Success: true, Message: MsgAdded})
			return
		}
		if cart[req.ItemID] > 0 {
			cart[req.ItemID]--
		}
		c.JSON(http.StatusOK, backend.Reply{Success: true, Message: MsgRemoved})
	}
}

func (s *Server) getCart(c *gin.Context) {
	token := c.GetHeader(backend.TokenHeader)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authorized(token) {
		ok := false
		c.JSON(http.StatusOK, backend.CartData{Success: &ok, Message: MsgNotAuthed})
		return
	}
	cart := make(map[string]int, len(s.carts[token]))
	for k, v := range s.carts[token] {
		cart[k] = v
	}
	ok := true
	c.JSON(http.StatusOK, backend.CartData{Success: &ok, CartData: cart})
}
