package transport

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/config"
	"github.com/theiron97/hwopusd/internal/service"
)

// Server accepts websocket connections and routes framed requests to
// the decoder service endpoints. Requests on a connection are handled
// one at a time, in order.
type Server struct {
	logger     *zap.Logger
	cfg        *config.ServerConfig
	manager    *service.Manager
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// NewServer creates the websocket transport server.
func NewServer(logger *zap.Logger, cfg *config.Config, manager *service.Manager) *Server {
	s := &Server{
		logger:  logger,
		cfg:     &cfg.Server,
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/hwopus", s.handleConnection)
	s.httpServer = &http.Server{Addr: s.cfg.ListenAddr, Handler: mux}

	return s
}

// Start binds the listener and serves connections in the background.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}

	s.logger.Info("Decoder service listening", zap.String("addr", s.cfg.ListenAddr))

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Transport server terminated", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the listener down and waits for in-flight connections.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))

		return
	}
	defer conn.Close()

	conn.SetReadLimit(s.cfg.MaxMessageBytes)

	// Every session opened on this connection is torn down with it.
	table := newEndpointTable(s.manager)
	defer table.closeAll()

	s.logger.Info("Client connected", zap.String("remote", conn.RemoteAddr().String()))

	for {
		messageType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Connection read failed", zap.Error(err))
			}

			return
		}

		if messageType != websocket.BinaryMessage {
			s.logger.Warn("Ignoring non-binary message",
				zap.Int("message_type", messageType))

			continue
		}

		response := s.serveMessage(r.Context(), table, msg)
		if err := conn.WriteMessage(websocket.BinaryMessage, response); err != nil {
			s.logger.Warn("Connection write failed", zap.Error(err))

			return
		}
	}
}

func (s *Server) serveMessage(ctx context.Context, table *endpointTable, msg []byte) []byte {
	req, err := decodeRequest(msg)
	if err != nil {
		s.logger.Error("Malformed request message",
			zap.Int("message_sz", len(msg)),
			zap.Error(err))

		return encodeResponse(service.ResultMalformedPacket, nil, nil)
	}

	// The input side is bounded by the websocket read limit; the
	// declared output capacity needs its own bound or a small request
	// could demand an arbitrarily large response allocation.
	if int64(req.OutputCapacity) > s.cfg.MaxOutputBytes {
		s.logger.Error("Declared output capacity over limit",
			zap.Uint32("output_capacity", req.OutputCapacity),
			zap.Int64("max_output_bytes", s.cfg.MaxOutputBytes))

		return encodeResponse(service.ResultContractViolation, nil, nil)
	}

	endpoint, ok := table.get(req.Endpoint)
	if !ok {
		s.logger.Error("Request for unknown endpoint",
			zap.Uint32("endpoint", req.Endpoint),
			zap.Uint32("method", req.Method))

		return encodeResponse(service.ResultContractViolation, nil, nil)
	}

	rb := newResponseBuilder(table)
	code := endpoint.Handle(ctx, req.Method, newCall(req), rb)
	if code != service.ResultSuccess {
		return encodeResponse(code, nil, nil)
	}

	return encodeResponse(code, rb.scalars, rb.output)
}
