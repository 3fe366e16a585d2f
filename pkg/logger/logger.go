package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/elores-client/pkg/config"
	"github.com/noah-isme/elores-client/pkg/middleware/requestid"
)

const fieldsKey = "logFields"

// quietPaths are probed by orchestrators and logged at debug level only.
var quietPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// New builds the process logger. Every line carries the scheduling server
// address so gateway and CLI logs can be told apart per server.
func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	}

	zapCfg.Encoding = "json"
	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	}
	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stdout belongs to the CLI's rendered output
	zapCfg.OutputPaths = []string{"stderr"}

	l, err := zapCfg.Build(zap.Fields(
		zap.String("server", cfg.Server.Addr()),
		zap.String("env", cfg.Env),
	))
	if err != nil {
		return nil, err
	}
	return l.Named("elores"), nil
}

// AddFields attaches fields to the request log line written by GinMiddleware.
// Handlers and middleware use it to record the session user or the command
// a request turned into.
func AddFields(c *gin.Context, fields ...zap.Field) {
	if len(fields) == 0 {
		return
	}
	c.Set(fieldsKey, append(contextFields(c), fields...))
}

func contextFields(c *gin.Context) []zap.Field {
	if v, ok := c.Get(fieldsKey); ok {
		if fields, ok := v.([]zap.Field); ok {
			return fields
		}
	}
	return nil
}

// GinMiddleware writes one line per gateway request. Server errors log at
// error level, client errors at warn, probe endpoints at debug.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	l = l.Named("gateway")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if route == "unmatched" || strings.Contains(route, ":") {
			fields = append(fields, zap.String("path", c.Request.URL.Path))
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		fields = append(fields, contextFields(c)...)
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			l.Error("request failed", fields...)
		case status >= 400:
			l.Warn("request rejected", fields...)
		case quietPaths[route]:
			l.Debug("probe", fields...)
		default:
			l.Info("request", fields...)
		}
	}
}
