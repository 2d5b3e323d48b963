package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))

	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v (%s)", args, err, out.String())
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(bytes.SplitN(out.Bytes(), []byte("\n"), 2)[0], &decoded); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	return decoded
}

func TestSqrtRatioCommand(t *testing.T) {
	got := execute(t, "sqrt-ratio", "--tick", "0")
	if got["sqrt_price_x96"] != "79228162514264337593543950336" {
		t.Fatalf("unexpected output: %v", got)
	}

	got = execute(t, "tick", "--sqrt-ratio", "4295128739")
	if got["tick"] != float64(-887272) {
		t.Fatalf("unexpected output: %v", got)
	}

	got = execute(t, "encode", "--amount1", "100", "--amount0", "1")
	if got["sqrt_price_x96"] != "792281625142643375935439503360" {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestPriceCommands(t *testing.T) {
	got := execute(t, "price-to-tick", "--base", "USDC", "--quote", "USDT", "--price", "1", "--tolerant")
	if got["tick"] != float64(0) || got["tick_price"] != "1" {
		t.Fatalf("unexpected output: %v", got)
	}

	got = execute(t, "tick-to-price", "--base", "USDC", "--quote", "USDT", "--tick=-4")
	if got["price"] != "0.9996" {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestPriceCommandsOnOtherChain(t *testing.T) {
	got := execute(t, "tick-to-price", "--base", "USDC", "--quote", "USDT", "--tick=-4", "--chain-id", "137")
	if got["price"] != "0.9996" || got["chain_id"] != float64(137) {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestPoolAddressCommand(t *testing.T) {
	got := execute(t, "pool-address", "--token-a", "USDC", "--token-b", "DAI", "--fee", "medium")
	address, _ := got["address"].(string)
	if strings.ToLower(address) != "0x98babaf506cdaf4801e2ed53c0d17dc78c4eb905" {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestUnknownTokenFails(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"tick-to-price", "--base", "NOPE", "--quote", "USDC", "--log-level", "error"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown token")
	}
}
