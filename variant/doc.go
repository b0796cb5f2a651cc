// Package variant manages native Variant storage: a fixed-size slot that
// must be constructed exactly once before use and destroyed exactly once
// afterwards.
//
// A Bridge tracks every slot it constructed by address. Destroying an address
// that is not live is reported as a double destroy and never reaches the
// host. Slots wrapping host-owned storage (Borrow) are never destroyed by
// the bridge.
//
// Values cross the boundary through the host's from-type and to-type
// constructors:
//
//	nil          <-> Nil
//	bool         <-> bool
//	int*, uint*  <-> int (64-bit)
//	float*       <-> float (64-bit)
//	string       <-> String
//	Vector2/3/4  <-> Vector2/3/4
//	Color        <-> Color
//
// Operations whose native call constructs its result unconditionally
// (evaluate, call, get, get_indexed) always receive a fresh slot; on
// failure the bridge destroys it before returning the error.
package variant
