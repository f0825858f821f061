package templates

// DashboardHTML is the dashboard page. Server-side it fills the summary
// values of the latest render; afterwards the page follows /ws.
const DashboardHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
    <style>
        :root {
            --bg: #1e1e2e;
            --card: #27273a;
            --text-primary: #e4e4ef;
            --text-secondary: #9a9ab0;
            --accent: {{.Accent}};
            --radius: 8px;
        }

        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: var(--bg);
            color: var(--text-primary);
            margin: 0;
            padding: 24px;
        }

        h1 { color: var(--accent); margin-top: 0; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 16px; }
        .card { background: var(--card); border-radius: var(--radius); padding: 16px; }
        .label { color: var(--text-secondary); font-size: 0.85em; }
        .value { font-size: 1.6em; font-weight: 600; }
        .bar { height: 6px; background: #3a3a50; border-radius: 3px; margin-top: 8px; }
        .bar > div { height: 100%; background: var(--accent); border-radius: 3px; width: 0; }
        .trend-up { color: #4caf50; }
        .trend-down { color: #f44336; }
        .hidden { display: none; }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 6px 8px; text-align: right; }
        th:first-child, td:first-child { text-align: left; }
        .event-success { color: #4caf50; }
        .event-error { color: #f44336; }
        .event-warning { color: #ff9800; }
        #toast { position: fixed; bottom: 24px; right: 24px; padding: 12px 16px; border-radius: var(--radius); display: none; }
        #toast.success { display: block; background: #2e7d32; }
        #toast.error { display: block; background: #c62828; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>

    <div class="grid">
        <div class="card"><div class="label">Total Commands</div><div class="value" id="total-commands">{{index .Text "total-commands"}}</div><div id="commands-change"></div></div>
        <div class="card"><div class="label">Total Currency</div><div class="value" id="total-currency">{{index .Text "total-currency"}}</div><div id="currency-change"></div></div>
        <div class="card"><div class="label">Runtime</div><div class="value" id="runtime">{{index .Text "runtime"}}</div></div>
        <div class="card"><div class="label">Success Rate</div><div class="value" id="success-rate">{{index .Text "success-rate"}}</div></div>
        <div class="card"><div class="label">CPU</div><div class="value" id="cpu-usage-value">{{index .Text "cpu-usage-value"}}</div><div class="bar"><div id="cpu-usage"></div></div></div>
        <div class="card"><div class="label">Memory</div><div class="value" id="memory-usage-value">{{index .Text "memory-usage-value"}}</div><div class="bar"><div id="memory-usage"></div></div></div>
        <div class="card"><div class="label">Latency</div><div class="value" id="latency-value">{{index .Text "latency-value"}}</div><div class="bar"><div id="latency"></div></div></div>
        <div class="card hidden" id="battery-container"><div class="label">Battery</div><div class="value" id="battery-value">{{index .Text "battery-value"}}</div><div class="bar"><div id="battery"></div></div></div>
    </div>

    <div class="grid" style="margin-top: 16px">
        <div class="card"><canvas id="incomeDistributionChart"></canvas></div>
        <div class="card"><canvas id="commandSuccessChart"></canvas></div>
        <div class="card"><canvas id="hourlyEarningsChart"></canvas></div>
        <div class="card"><canvas id="resourceUsageChart"></canvas></div>
    </div>

    <div class="card" style="margin-top: 16px">
        <table>
            <thead><tr><th>Command</th><th>Count</th><th>Success</th><th>Fail</th><th>Rate</th><th>Currency</th><th>Last Used</th></tr></thead>
            <tbody id="command-stats-table"></tbody>
        </table>
    </div>

    <div class="grid" style="margin-top: 16px">
        <div class="card" id="advanced-timeline"></div>
        <div class="card" id="pet-stats-container"></div>
    </div>

    <div class="card" style="margin-top: 16px">
        <div class="label">Settings</div>
        <ul>
        {{- range .Panels}}
            <li><a href="/api/settings/panels/{{.Kind}}">{{.Title}}</a></li>
        {{- end}}
        </ul>
    </div>

    <div id="toast"></div>

    <script>
        const charts = {};

        function setText(id, value) {
            const el = document.getElementById(id);
            if (el) el.textContent = value;
        }

        function cell(tag, text, cls) {
            const el = document.createElement(tag);
            el.textContent = text;
            if (cls) el.className = cls;
            return el;
        }

        function apply(d) {
            Object.entries(d.text || {}).forEach(([id, v]) => setText(id, v));
            Object.entries(d.progress || {}).forEach(([id, v]) => {
                const el = document.getElementById(id);
                if (el) el.style.width = v + '%';
            });
            Object.entries(d.classes || {}).forEach(([id, v]) => {
                const el = document.getElementById(id);
                if (el) el.className = v;
            });
            Object.entries(d.visible || {}).forEach(([id, v]) => {
                const el = document.getElementById(id);
                if (el) el.classList.toggle('hidden', !v);
            });
            Object.entries(d.charts || {}).forEach(([id, c]) => {
                if (charts[id]) {
                    charts[id].data.labels = c.labels;
                    charts[id].data.datasets = c.datasets;
                    charts[id].update('none');
                } else if (window.Chart) {
                    charts[id] = new Chart(document.getElementById(id), {type: c.type, data: {labels: c.labels, datasets: c.datasets}});
                }
            });
            if (d.commandTable) {
                const body = document.getElementById('command-stats-table');
                body.replaceChildren(...d.commandTable.rows.map(r => {
                    const tr = document.createElement('tr');
                    [r.name, r.count, r.success, r.fail, r.rate, r.currency, r.lastUsed].forEach(v => tr.appendChild(cell('td', v)));
                    return tr;
                }));
            }
            if (d.timeline) {
                const el = document.getElementById('advanced-timeline');
                el.replaceChildren(...(d.timeline.items.length
                    ? d.timeline.items.map(i => cell('div', i.time + ' ' + i.text, i.class))
                    : [cell('div', d.timeline.empty)]));
            }
            if (d.pets) {
                const el = document.getElementById('pet-stats-container');
                el.replaceChildren(...(d.pets.cards.length
                    ? d.pets.cards.map(p => cell('div', p.name + ' Lv ' + p.level + ' (' + p.experience + ') ATK ' + p.attack + ' DEF ' + p.defense))
                    : [cell('strong', d.pets.emptyTitle), cell('div', d.pets.emptyHint)]));
            }
        }

        function toast(t) {
            const el = document.getElementById('toast');
            el.textContent = t.message;
            el.className = t.level;
            setTimeout(() => { el.className = ''; }, 3000);
        }

        function connect() {
            const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
            ws.onmessage = (ev) => {
                const msg = JSON.parse(ev.data);
                if (msg.type === 'dashboard') apply(msg.payload);
                else if (msg.type === 'toast') toast(msg.payload);
                else if (msg.type === 'log') console.log('[' + msg.payload.level + '] ' + msg.payload.message);
            };
            ws.onclose = () => setTimeout(connect, {{.RefreshMillis}});
        }
        connect();
    </script>
</body>
</html>
`
