//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/speakeasy-api/alu/pkg/playground"
)

// promisify wraps a Go function to return a JavaScript Promise
func promisify(fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) any {
			resolve := promiseArgs[0]
			reject := promiseArgs[1]

			go func() {
				result, err := fn(args)
				if err != nil {
					errorConstructor := js.Global().Get("Error")
					reject.Invoke(errorConstructor.New(err.Error()))
					return
				}
				resolve.Invoke(result)
			}()

			return nil
		})

		promiseConstructor := js.Global().Get("Promise")
		return promiseConstructor.New(handler)
	})
}

func main() {
	js.Global().Set("SolveALU", promisify(func(args []js.Value) (string, error) {
		if len(args) < 1 || len(args) > 2 {
			return "", fmt.Errorf("SolveALU: expected 1 or 2 args (program, query), got %v", len(args))
		}
		query := ""
		if len(args) == 2 {
			query = args[1].String()
		}
		return playground.Solve(args[0].String(), query)
	}))

	js.Global().Set("FormatALU", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("FormatALU: expected 1 arg (program), got %v", len(args))
		}
		return playground.FormatProgram(args[0].String())
	}))

	js.Global().Set("ALUPipeline", promisify(func(args []js.Value) (string, error) {
		if len(args) < 1 || len(args) > 2 {
			return "", fmt.Errorf("ALUPipeline: expected 1 or 2 args (program, strict), got %v", len(args))
		}
		strict := len(args) == 2 && args[1].Truthy()

		result, err := playground.Pipeline(args[0].String(), strict)
		if err != nil {
			return "", err
		}

		jsonBytes, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("failed to marshal pipeline result: %w", err)
		}
		return string(jsonBytes), nil
	}))

	// Keep the program running
	<-make(chan bool)
}
