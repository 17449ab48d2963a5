package hashing

import (
	"encoding/hex"
	"testing"
)

func sampleTask() Task {
	return Task{
		ProjectContent: "ipfs://QmExampleProjectContentHash",
		ExpirationTime: 1893456000,
		LovelaceAmount: 5_000_000,
		NativeAssets: []NativeAsset{
			{AssetID: "a1b2c3", Quantity: 1},
			{AssetID: "d4e5f6", Quantity: 10},
		},
	}
}

func TestVerifyTaskHashRoundTrip(t *testing.T) {
	task := sampleTask()
	hash, err := ComputeTaskHash(task)
	if err != nil {
		t.Fatal(err)
	}
	if !IsValidTaskHash(hash) {
		t.Fatalf("expected valid hash, got %q", hash)
	}
	if !VerifyTaskHash(task, hash) {
		t.Fatal("expected round-trip verification to succeed")
	}
}

func TestComputeTaskHashSensitiveToNativeAssetOrder(t *testing.T) {
	base := sampleTask()
	reordered := base
	reordered.NativeAssets = []NativeAsset{base.NativeAssets[1], base.NativeAssets[0]}

	h1, _ := ComputeTaskHash(base)
	h2, _ := ComputeTaskHash(reordered)
	if h1 == h2 {
		t.Fatal("expected native asset ordering to affect the hash")
	}
}

func TestComputeTaskHashEmptyNativeAssets(t *testing.T) {
	task := sampleTask()
	task.NativeAssets = nil
	hash, err := ComputeTaskHash(task)
	if err != nil {
		t.Fatal(err)
	}
	if !IsValidTaskHash(hash) {
		t.Fatalf("expected valid hash, got %q", hash)
	}
}

func TestDebugTaskCBORIsStableHexOfComputedBytes(t *testing.T) {
	task := sampleTask()
	first := DebugTaskCBOR(task)
	second := DebugTaskCBOR(task)
	if first != second {
		t.Fatal("expected deterministic CBOR debug output")
	}
	if len(first) == 0 {
		t.Fatal("expected non-empty CBOR debug output")
	}

	raw, err := hex.DecodeString(first)
	if err != nil {
		t.Fatalf("expected hex output, got %q: %v", first, err)
	}
	digest, _ := blake2b256Hex(raw)
	hash, _ := ComputeTaskHash(task)
	if digest != hash {
		t.Fatal("expected DebugTaskCBOR to return the bytes ComputeTaskHash hashes")
	}
}
