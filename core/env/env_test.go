package env

import "fmt"

func ExampleEnv_Lookup() {
	e := New([]string{"HOME=/home/amy", "PATH=/bin", "MALFORMED"})
	e.Set("NAME", "amy")

	v, ok := e.Lookup("NAME")
	fmt.Println("session:", v, ok)
	v, ok = e.Lookup("HOME")
	fmt.Println("host:", v, ok)
	v, ok = e.Lookup("MISSING")
	fmt.Printf("missing: %q %v\n", v, ok)

	// Output: session: amy true
	// host: /home/amy true
	// missing: "" false
}

func ExampleEnv_Set_shadowing() {
	e := New([]string{"HOME=/home/amy"})
	e.Set("HOME", "/tmp")
	fmt.Println(e.Get("HOME"))

	e.Unset("HOME")
	fmt.Println(e.Get("HOME"))

	// Output: /tmp
	// /home/amy
}

func ExampleEnv_Environ() {
	e := New([]string{"B=2", "A=1"})
	e.Set("C", "3")
	e.Set("A", "override")

	fmt.Println(e.Environ())

	// Output: [A=override B=2 C=3]
}

func ExampleEnv_Snapshot() {
	e := New(nil)
	e.Set("X", "before")

	snap := e.Snapshot()
	e.Set("X", "after")

	fmt.Println(snap.Get("X"), e.Get("X"))

	// Output: before after
}

func ExampleEnv_Bind() {
	e := New(nil)
	e.Set("X", "outer")

	restore := e.Bind("X", "inner")
	fmt.Println(e.Get("X"))
	restore()
	fmt.Println(e.Get("X"))

	restore = e.Bind("FRESH", "tmp")
	restore()
	_, ok := e.Lookup("FRESH")
	fmt.Println(ok)

	// Output: inner
	// outer
	// false
}
