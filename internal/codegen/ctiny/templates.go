package ctiny

const fileTemplate = `/* Code generated by bakelite. DO NOT EDIT. */
#ifndef BAKELITE_GEN_H
#define BAKELITE_GEN_H

#include <stdint.h>
#include <string.h>
#include "bakelite_runtime.h"

{{range .Enums}}
typedef {{.Underlying}} {{.Name}};
{{$enumName := .Name}}{{$underlying := .Underlying}}{{range .Members}}#define {{$enumName}}_{{.Name}} (({{$underlying}}){{.Value}})
{{end}}
{{end}}
{{range .Structs}}
struct {{.Name}} {
{{range .Fields}}    {{.Decl}};
{{end}}};

static inline int pack_{{.Name}}(const struct {{.Name}} *msg, bkl_stream_t *s) {
{{range .Fields}}{{packField .}}
{{end}}    return BKL_OK;
}

static inline int unpack_{{.Name}}(struct {{.Name}} *msg, bkl_stream_t *s) {
{{range .Fields}}{{unpackField .}}
{{end}}    return BKL_OK;
}
{{end}}
{{if .Protocol}}
{{range .Protocol.Messages}}#define MSG_ID_{{.Struct.Name}} {{.ID}}
{{end}}
{{end}}
#endif /* BAKELITE_GEN_H */
`
