//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelforge/menger/api"
)

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func generateVXM(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing divisions/colorMode")
	}
	out, err := api.GenerateVXM(args[0].Int(), args[1].Bool(), nil)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func invertVXM(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing divisions")
	}
	out, err := api.InvertVXM(args[0].Int(), nil)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func generateGLB(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing divisions/colorMode")
	}
	out, err := api.GenerateGLB(args[0].Int(), args[1].Bool(), nil)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func vxm2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vxm bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.VXMToGLB(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func main() {
	js.Global().Set("mengerGenerateVXM", js.FuncOf(generateVXM))
	js.Global().Set("mengerInvertVXM", js.FuncOf(invertVXM))
	js.Global().Set("mengerGenerateGLB", js.FuncOf(generateGLB))
	js.Global().Set("mengerVXM2GLB", js.FuncOf(vxm2glb))
	select {}
}
