package service

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/ai"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
	"github.com/theailifestyle/mas-a2a/pkg/jsonrpc"
)

/*
A2AServer exposes one agent over the A2A HTTP surface: the well-known
card, a health endpoint, and the JSON-RPC methods message/send,
tasks/get and tasks/cancel.
*/
type A2AServer struct {
	app     *fiber.App
	agent   *ai.Agent
	manager *ai.TaskManager
}

func NewAgentServer(agent *ai.Agent, manager *ai.TaskManager) *A2AServer {
	srv := &A2AServer{
		app: fiber.New(fiber.Config{
			AppName:      agent.Card.Name,
			ServerHeader: "A2A-Agent-Server",
		}),
		agent:   agent,
		manager: manager,
	}

	srv.app.Use(logger.New())
	srv.app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	srv.app.Get("/", srv.handleRoot)
	srv.app.Get("/.well-known/agent.json", srv.handleAgentCard)
	srv.app.Post("/rpc", srv.handleRPC)

	return srv
}

// App exposes the fiber app, used by tests to drive requests in-process.
func (srv *A2AServer) App() *fiber.App {
	return srv.app
}

func (srv *A2AServer) Listen(addr string) error {
	log.Info("agent listening", "agent", srv.agent.Card.Name, "addr", addr)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (srv *A2AServer) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString("OK")
}

func (srv *A2AServer) handleAgentCard(ctx fiber.Ctx) error {
	return ctx.JSON(srv.agent.Card)
}

/*
handleRPC is the central routing for the A2A RPC methods.
*/
func (srv *A2AServer) handleRPC(ctx fiber.Ctx) error {
	ctx.Set("Content-Type", "application/json")

	var request jsonrpc.Request

	if err := ctx.Bind().Body(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			errorResponse(nil, errors.ErrInvalidRequest.WithMessagef(
				"invalid request body: %v", err,
			)),
		)
	}

	switch request.Method {
	case "message/send":
		var params a2a.MessageSendParams

		if rpcErr := unmarshalParams(request.Params, &params); rpcErr != nil {
			return ctx.JSON(errorResponse(request.ID, rpcErr))
		}

		task, rpcErr := srv.manager.SendMessage(ctx, params)
		return srv.respond(ctx, request.ID, task, rpcErr)
	case "tasks/get":
		var params a2a.TaskQueryParams

		if rpcErr := unmarshalParams(request.Params, &params); rpcErr != nil {
			return ctx.JSON(errorResponse(request.ID, rpcErr))
		}

		task, rpcErr := srv.manager.GetTask(ctx, params)
		return srv.respond(ctx, request.ID, task, rpcErr)
	case "tasks/cancel":
		var params a2a.TaskIDParams

		if rpcErr := unmarshalParams(request.Params, &params); rpcErr != nil {
			return ctx.JSON(errorResponse(request.ID, rpcErr))
		}

		task, rpcErr := srv.manager.CancelTask(ctx, params)
		return srv.respond(ctx, request.ID, task, rpcErr)
	default:
		return ctx.JSON(errorResponse(
			request.ID,
			errors.ErrMethodNotFound.WithMessagef(
				"%s: %s", errors.ErrMethodNotFound.Message, request.Method,
			),
		))
	}
}

// respond writes result or error as a JSON-RPC envelope. Protocol errors
// ride on HTTP 200 so clients distinguish them from transport failures.
func (srv *A2AServer) respond(
	ctx fiber.Ctx, id any, result any, rpcErr *errors.RpcError,
) error {
	if rpcErr != nil {
		log.Error("rpc error",
			"agent", srv.agent.Card.Name,
			"code", rpcErr.Code,
			"message", rpcErr.Message,
		)
		return ctx.JSON(errorResponse(id, rpcErr))
	}

	response := jsonrpc.Response{
		Message: jsonrpc.Message{
			MessageIdentifier: jsonrpc.MessageIdentifier{ID: id},
			JSONRPC:           "2.0",
		},
	}

	if result != nil {
		buf, err := json.Marshal(result)

		if err != nil {
			return ctx.JSON(errorResponse(
				id, errors.ErrInternal.WithMessagef("failed to encode result: %v", err),
			))
		}

		response.Result = buf
	}

	return ctx.JSON(response)
}

func errorResponse(id any, rpcErr *errors.RpcError) jsonrpc.Response {
	return jsonrpc.Response{
		Message: jsonrpc.Message{
			MessageIdentifier: jsonrpc.MessageIdentifier{ID: id},
			JSONRPC:           "2.0",
		},
		Error: &jsonrpc.Error{
			Code:    rpcErr.Code,
			Message: rpcErr.Message,
			Data:    rpcErr.Data,
		},
	}
}

func unmarshalParams(raw json.RawMessage, out any) *errors.RpcError {
	if len(raw) == 0 {
		return errors.ErrInvalidParams.WithMessagef("missing params")
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Error("failed to unmarshal params", "error", err, "params", string(raw))
		return errors.ErrInvalidParams.WithMessagef("failed to unmarshal params: %v", err)
	}

	return nil
}
