package host

const fileTemplate = `# Code generated by bakelite. DO NOT EDIT.
"""Generated codec for the {{.ProtocolName}} protocol."""

from __future__ import annotations

import struct
from dataclasses import dataclass, field
from typing import Optional

{{range .Enums}}
class {{.Name}}:
{{range .Members}}    {{.Name}} = {{.Value}}
{{end}}
{{end}}
{{range .Structs}}
@dataclass
class {{.Name}}:
{{range .Fields}}    {{.Name}}: {{.Annotation}}
{{end}}
    def pack(self) -> bytes:
        out = bytearray()
{{range .Fields}}{{packField .}}
{{end}}        return bytes(out)

    @classmethod
    def unpack(cls, buf: bytes) -> "{{.Name}}":
        pos = 0
{{range .Fields}}{{unpackField .}}
{{end}}        return cls({{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Name}}={{$f.Name}}{{end}})
{{end}}
{{if .Protocol}}
MESSAGE_IDS = {
{{range .Protocol.Messages}}    {{.Struct.Name}}: {{.ID}},
{{end}}}

MESSAGE_TYPES_BY_ID = {
{{range .Protocol.Messages}}    {{.ID}}: {{.Struct.Name}},
{{end}}}
{{end}}
`
