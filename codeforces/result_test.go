package codeforces

import (
	"errors"
	"testing"
)

func TestResult_States(t *testing.T) {
	t.Parallel()

	ok := OKResult([]int{1})
	if !ok.OK() || ok.Rejected() || ok.Unreachable() || ok.Kind() != KindOK {
		t.Fatalf("ok result reports kind %v", ok.Kind())
	}

	rej := RejectedResult[[]int]("contestId: Contest with id 0 not found")
	if rej.OK() || !rej.Rejected() || rej.Unreachable() {
		t.Fatalf("rejected result reports kind %v", rej.Kind())
	}
	if got := rej.String(); got != "rejected: contestId: Contest with id 0 not found" {
		t.Fatalf("String() = %q", got)
	}

	cause := errors.New("connection refused")
	un := UnreachableResult[[]int](cause)
	if un.OK() || un.Rejected() || !un.Unreachable() {
		t.Fatalf("unreachable result reports kind %v", un.Kind())
	}
	if got := un.String(); got != "unreachable: connection refused" {
		t.Fatalf("String() = %q", got)
	}

	var zero Result[int]
	if !zero.Unreachable() {
		t.Fatalf("zero Result kind = %v, want unreachable", zero.Kind())
	}
}

func TestMapResult_KeepsKind(t *testing.T) {
	t.Parallel()

	length := func(v []int) int { return len(v) }

	if got := mapResult(OKResult([]int{1, 2, 3}), length); !got.OK() || got.Value != 3 {
		t.Fatalf("mapResult(ok) = %v/%d, want ok/3", got, got.Value)
	}
	if got := mapResult(RejectedResult[[]int]("no"), length); !got.Rejected() || got.Comment != "no" {
		t.Fatalf("mapResult(rejected) = %v, want rejected: no", got)
	}
	cause := errors.New("boom")
	if got := mapResult(UnreachableResult[[]int](cause), length); !got.Unreachable() || got.Cause != cause {
		t.Fatalf("mapResult(unreachable) = %v, want unreachable with cause", got)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for k, want := range map[Kind]string{
		KindUnreachable: "unreachable",
		KindRejected:    "rejected",
		KindOK:          "ok",
		Kind(9):         "Kind(9)",
	} {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
