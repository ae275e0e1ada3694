// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keepalivestats

import "testing"

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(100)
	if got := c.NowMS(); got != 100 {
		t.Fatalf("NowMS() = %d, want 100", got)
	}
	c.Set(250)
	if got := c.NowMS(); got != 250 {
		t.Fatalf("NowMS() = %d, want 250", got)
	}
	if got := c.Advance(50); got != 300 {
		t.Fatalf("Advance(50) = %d, want 300", got)
	}
}

func TestFakeClockSetPanicsOnBackwardsMove(t *testing.T) {
	c := NewFakeClock(100)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic moving FakeClock backwards via Set")
		}
	}()
	c.Set(50)
}

func TestFakeClockSetUncheckedAllowsBackwardsMove(t *testing.T) {
	c := NewFakeClock(100)
	c.SetUnchecked(50)
	if got := c.NowMS(); got != 50 {
		t.Fatalf("NowMS() = %d, want 50", got)
	}
}

func TestSystemClockNonDecreasing(t *testing.T) {
	c := NewSystemClock()
	a := c.NowMS()
	b := c.NowMS()
	if b < a {
		t.Fatalf("SystemClock went backwards: %d then %d", a, b)
	}
}
