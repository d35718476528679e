// Package client provides commands that call a running craft server
package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/iniside/velesarc-craft/internal/handlers/craft/v1alpha1"
)

var (
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running craft server",
	Long:  `Client commands send real gRPC requests to a craft server.`,
}

var callCmd = &cobra.Command{
	Use:   "call [method] [json]",
	Short: "Call a CraftService method with a JSON request",
	Long: `Call a CraftService method. The request is a JSON object, read from
stdin when given as "-". Examples:

  call ListStations
  call CreateStation '{"id":"forge_1","tags":["Station.Forge"]}'
  call Tick '{"stationId":"forge_1","deltaSeconds":2.5}'`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: methods,
	RunE:      runCall,
}

var methods = []string{
	v1alpha1.MethodCreateStation,
	v1alpha1.MethodGetStation,
	v1alpha1.MethodListStations,
	v1alpha1.MethodDepositItems,
	v1alpha1.MethodWithdrawOutput,
	v1alpha1.MethodQueueRecipe,
	v1alpha1.MethodCancelEntry,
	v1alpha1.MethodTick,
	v1alpha1.MethodInteract,
	v1alpha1.MethodListRecipes,
	v1alpha1.MethodEvaluateOutput,
	v1alpha1.MethodSimulate,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(callCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

func knownMethod(name string) bool {
	for _, m := range methods {
		if m == name {
			return true
		}
	}
	return false
}

// parseRequest reads the request object from the argument or stdin
func parseRequest(args []string) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if len(args) == 0 {
		return req, nil
	}

	raw := []byte(args[0])
	if args[0] == "-" {
		var err error
		if raw, err = io.ReadAll(os.Stdin); err != nil {
			return nil, fmt.Errorf("failed to read request: %w", err)
		}
	}
	if strings.TrimSpace(string(raw)) == "" {
		return req, nil
	}
	if err := protojson.Unmarshal(raw, req); err != nil {
		return nil, fmt.Errorf("request must be a JSON object: %w", err)
	}
	return req, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	method := args[0]
	if !knownMethod(method) {
		return fmt.Errorf("unknown method %q, expected one of %s", method, strings.Join(methods, ", "))
	}

	req, err := parseRequest(args[1:])
	if err != nil {
		return err
	}

	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := v1alpha1.NewClient(conn).Call(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
