package pulse

import (
	"reflect"
	"testing"
)

func TestLifecycleBlockRunsImmediately(t *testing.T) {
	loads := 0
	NewLifecycleBlock(func(token *CancelToken) Cleanup {
		if token == nil || token.IsFired() {
			t.Error("block should receive a fresh, unfired token")
		}
		loads++
		return nil
	})

	if loads != 1 {
		t.Errorf("expected 1 load, got %d", loads)
	}
}

func TestLifecycleBlockLazy(t *testing.T) {
	loads := 0
	block := NewLifecycleBlock(func(token *CancelToken) Cleanup {
		loads++
		return nil
	}, Lazy())

	if loads != 0 {
		t.Fatalf("lazy block must not run at creation, got %d loads", loads)
	}

	block.Load()
	if loads != 1 {
		t.Errorf("expected 1 load, got %d", loads)
	}
}

func TestLifecycleBlockReloadCyclesCleanupAndToken(t *testing.T) {
	var order []string
	var tokens []*CancelToken
	block := NewLifecycleBlock(func(token *CancelToken) Cleanup {
		tokens = append(tokens, token)
		order = append(order, "load")
		return func() {
			order = append(order, "cleanup")
		}
	})

	block.Load()

	want := []string{"load", "cleanup", "load"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if len(tokens) != 2 || tokens[0] == tokens[1] {
		t.Error("each load should receive a fresh token")
	}
	if !tokens[0].IsFired() {
		t.Error("reload should fire the previous token")
	}
	if tokens[1].IsFired() {
		t.Error("the current token must not be fired")
	}
}

func TestLifecycleBlockUnloadIdempotent(t *testing.T) {
	cleanups := 0
	block := NewLifecycleBlock(func(token *CancelToken) Cleanup {
		return func() {
			cleanups++
		}
	})

	block.Unload()
	block.Unload()

	if cleanups != 1 {
		t.Errorf("cleanup should run once, got %d", cleanups)
	}
}

func TestLifecycleBlockScopesSubscriptions(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	runs := 0
	block := NewLifecycleBlock(func(token *CancelToken) Cleanup {
		count.Subscribe(func() Cleanup {
			runs++
			return nil
		}, WithCancelToken(token))
		return nil
	})

	count.Set(1)
	if runs != 1 {
		t.Fatalf("expected 1 run while loaded, got %d", runs)
	}

	block.Unload()
	count.Set(2)
	if runs != 1 {
		t.Errorf("unload should sever the subscription, got %d runs", runs)
	}

	block.Load()
	count.Set(3)
	if runs != 2 {
		t.Errorf("reload should resubscribe, got %d runs", runs)
	}
}

func TestCancelTokenFireIdempotent(t *testing.T) {
	token := NewCancelToken()

	fires := 0
	token.OnFire(func() { fires++ })

	token.Fire()
	token.Fire()

	if fires != 1 {
		t.Errorf("expected 1 listener invocation, got %d", fires)
	}
	if !token.IsFired() {
		t.Error("token should report fired")
	}
}

func TestCancelTokenOnFireAfterFired(t *testing.T) {
	token := NewCancelToken()
	token.Fire()

	called := false
	token.OnFire(func() { called = true })

	if !called {
		t.Error("OnFire after firing should invoke immediately")
	}
}
