package cpptiny

const fileTemplate = `// Code generated by bakelite. DO NOT EDIT.
#pragma once

#include <cstdint>
#include <cstring>
#include "bakelite_runtime.hpp"

{{range .Enums}}
enum class {{.Name}} : {{.Underlying}} {
{{range .Members}}    {{.Name}} = {{.Value}},
{{end}}};
{{end}}
{{range .Structs}}
class {{.Name}} {
public:
{{range .Fields}}    {{.Decl}};
{{end}}
    int Pack(bkl::Stream &s) const {
{{range .Fields}}{{packField .}}
{{end}}        return bkl::kOk;
    }

    int Unpack(bkl::Stream &s) {
{{range .Fields}}{{unpackField .}}
{{end}}        return bkl::kOk;
    }
};
{{end}}
{{if .Protocol}}
{{range .Protocol.Messages}}constexpr uint8_t kMsgId{{.Struct.Name}} = {{.ID}};
{{end}}
{{end}}
`
