package simulator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"
)

var (
	logger = golog.Child("[simulator]")
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Server exposes a Device over the appliance's HTTP API.
type Server struct {
	device   *Device
	username string
	password string
	engine   *gin.Engine
}

// NewServer builds the HTTP handlers. Empty credentials disable Basic Auth.
func NewServer(device *Device, username, password string) *Server {
	s := &Server{device: device, username: username, password: password}
	s.engine = s.routes()
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")
	if s.username != "" {
		api.Use(gin.BasicAuth(gin.Accounts{s.username: s.password}))
	}

	api.GET("/auth/check", func(c *gin.Context) {
		reply(c, http.StatusOK, gin.H{"authenticated": true})
	})
	api.GET("/status", s.handleStatus)
	api.GET("/config", s.handleConfig)
	api.POST("/move", s.handleMove)

	pad := api.Group("/touchpad")
	pad.POST("/move", s.handleTouchpadMove)
	pad.POST("/click", s.handleTouchpadClick)
	pad.POST("/button", s.handleTouchpadButton)
	pad.POST("/scroll", s.handleTouchpadScroll)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	snap := s.device.Snapshot()
	reply(c, http.StatusOK, gin.H{
		"jiggler_enabled": snap.Settings.JigglerEnabled,
		"last_move_time":  snap.LastMove.Milliseconds(),
		"next_move_time":  snap.NextMove.Milliseconds(),
		"uptime_seconds":  int64(snap.Uptime / time.Second),
		"in_ap_mode":      false,
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	set := s.device.Snapshot().Settings
	reply(c, http.StatusOK, gin.H{
		"move_interval":     int64(set.MoveInterval / time.Second),
		"movement_x":        set.MovementX,
		"movement_y":        set.MovementY,
		"movement_speed":    set.MovementSpeed,
		"jiggler_enabled":   set.JigglerEnabled,
		"circular_movement": set.CircularMovement,
		"random_delay":      set.RandomDelay,
		"movement_trail":    set.MovementTrail,
	})
}

func (s *Server) handleMove(c *gin.Context) {
	s.device.Jiggle()
	reply(c, http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleTouchpadMove(c *gin.Context) {
	var body struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}
	if err := bind(c, &body); err != nil || body.X == nil || body.Y == nil {
		badRequest(c, "x and y are required")
		return
	}
	s.device.moveCursor(*body.X, *body.Y)
	reply(c, http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleTouchpadClick(c *gin.Context) {
	var body struct {
		Button    string `json:"button"`
		ClickType string `json:"clickType"`
	}
	if err := bind(c, &body); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if body.Button != "left" && body.Button != "right" {
		badRequest(c, "unknown button")
		return
	}
	s.device.click(body.Button)
	reply(c, http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleTouchpadButton(c *gin.Context) {
	var body struct {
		Button string `json:"button"`
		State  string `json:"state"`
	}
	if err := bind(c, &body); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if body.Button != "left" {
		badRequest(c, "only the left button can be held")
		return
	}
	switch body.State {
	case "press":
		s.device.setLeft(true)
	case "release":
		s.device.setLeft(false)
	default:
		badRequest(c, "state must be press or release")
		return
	}
	reply(c, http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleTouchpadScroll(c *gin.Context) {
	var body struct {
		Amount *int `json:"amount"`
	}
	if err := bind(c, &body); err != nil || body.Amount == nil {
		badRequest(c, "amount is required")
		return
	}
	s.device.scroll(*body.Amount)
	reply(c, http.StatusOK, gin.H{"success": true})
}

func badRequest(c *gin.Context, msg string) {
	c.Abort()
	reply(c, http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

// bind decodes a JSON request body.
func bind(c *gin.Context, v interface{}) error {
	if c.Request.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(c.Request.Body).Decode(v)
}

// reply writes v as a JSON response.
func reply(c *gin.Context, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("encoding response: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(code, "application/json; charset=utf-8", data)
}

// Run serves on addr and drives the jiggler schedule until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.device.Tick()
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
